package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

const rootPage = `<!DOCTYPE html>
<html>
    <head>
        <title>Gemini Code Generation API</title>
        <style>
            body { font-family: Arial, sans-serif; max-width: 800px; margin: 0 auto; padding: 20px; }
            h1 { color: #333; }
            .endpoint { background: #f4f4f4; padding: 10px; margin: 10px 0; border-radius: 5px; }
        </style>
    </head>
    <body>
        <h1>Gemini Code Generation API</h1>
        <p>Generate, modify and inspect web application code.</p>

        <div class="endpoint">
            <h3>POST /generate-code</h3>
            <p>Generate new web application code.</p>
        </div>

        <div class="endpoint">
            <h3>POST /modify-code</h3>
            <p>Modify existing web application code.</p>
        </div>

        <div class="endpoint">
            <h3>POST /analyze-image</h3>
            <p>Turn an uploaded design image into code.</p>
        </div>

        <div class="endpoint">
            <h3>POST /parse-html</h3>
            <p>Split a single HTML document into markup, stylesheet and script.</p>
        </div>

        <div class="endpoint">
            <h3>POST /ai-tutor</h3>
            <p>Ask a web development tutor a question.</p>
        </div>

        <p>Liveness at <a href="/health">/health</a>, metrics at <a href="/metrics">/metrics</a>.</p>
    </body>
</html>`

// Root serves the API description page
func (h *Handlers) Root(c *gin.Context) {
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(rootPage))
}
