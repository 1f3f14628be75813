package codegen

import (
	"strings"

	"github.com/1Dhiraj/HTH-Hackathon-HTH77/internal/domain/imaging"
)

// AppType selects the base instruction block for new-code prompts
type AppType string

const (
	AppTypeWeb  AppType = "web"
	AppTypeGame AppType = "game"
)

// Default request values
const (
	DefaultTemperature      = 0.7
	ModificationTemperature = 0.3
	DefaultFramework        = "vanilla"
)

// Titles used for the combined document
const (
	TitleGenerated = "Generated Web Application"
	TitleModified  = "Modified Web Application"
	TitleFromImage = "Generated from Image"
)

// CodeSnapshot is the markup, stylesheet and script state of an application
type CodeSnapshot struct {
	HTML       string `json:"html"`
	CSS        string `json:"css"`
	JavaScript string `json:"javascript"`
}

// IsEmpty reports whether every field is blank
func (s *CodeSnapshot) IsEmpty() bool {
	if s == nil {
		return true
	}
	return strings.TrimSpace(s.HTML) == "" &&
		strings.TrimSpace(s.CSS) == "" &&
		strings.TrimSpace(s.JavaScript) == ""
}

// ExtractionResult is a snapshot plus the synthesized combined document
type ExtractionResult struct {
	CodeSnapshot
	Combined string `json:"combined"`
}

// GenerationRequest is the body accepted by the generation endpoints
type GenerationRequest struct {
	Prompt           string        `json:"prompt"`
	Requirements     []string      `json:"requirements"`
	Type             AppType       `json:"type"`
	Framework        string        `json:"framework"`
	ExistingCode     *CodeSnapshot `json:"existingCode"`
	ModificationType *string       `json:"modificationType"`
	Timeout          int           `json:"timeout"`
	Temperature      *float64      `json:"temperature"`
}

// IsModification reports whether the request carries existing code
func (r *GenerationRequest) IsModification() bool {
	return !r.ExistingCode.IsEmpty()
}

// SamplingTemperature returns the requested temperature or the default
func (r *GenerationRequest) SamplingTemperature() float64 {
	if r.Temperature == nil {
		return DefaultTemperature
	}
	return *r.Temperature
}

// ApplyDefaults fills unset optional fields
func (r *GenerationRequest) ApplyDefaults() {
	if r.Type == "" {
		r.Type = AppTypeWeb
	}
	if r.Framework == "" {
		r.Framework = DefaultFramework
	}
	if r.Requirements == nil {
		r.Requirements = []string{}
	}
}

// GenerationResponse is returned by Generate
type GenerationResponse struct {
	Code           ExtractionResult `json:"code"`
	Type           AppType          `json:"type"`
	Framework      string           `json:"framework"`
	IsModification bool             `json:"isModification"`
}

// ModificationResponse is returned by Modify. When the provider suggests
// nothing, Code is nil and Unchanged holds the caller's snapshot.
type ModificationResponse struct {
	Code      *ExtractionResult
	Unchanged *CodeSnapshot
	Message   string
}

// ImageAnalysisResult is returned by AnalyzeImage
type ImageAnalysisResult struct {
	ImageInfo   imaging.Info     `json:"image_info"`
	Description string           `json:"description"`
	Code        ExtractionResult `json:"code"`
}
