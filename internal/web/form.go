package web

import (
	"html/template"
	"net/http"

	"github.com/gin-gonic/gin"
)

const indexTemplate = "index"

var indexPage = template.Must(template.New(indexTemplate).Parse(`<!DOCTYPE html>
<html>
    <head><title>S-DES Encryption and Decryption</title></head>
    <body>
        <h2>S-DES Encryption and Decryption</h2>
        <form method="POST" action="/">
            <label for="original_key">Enter a 10-bit key:</label><br>
            <input type="text" id="original_key" name="original_key" value="{{ .Key }}" required><br><br>

            <label for="plaintext">Enter an 8-bit plaintext:</label><br>
            <input type="text" id="plaintext" name="plaintext" value="{{ .Plaintext }}" required><br><br>

            <input type="submit" value="Encrypt and Decrypt">
        </form>
        {{ if .Error }}
            <p class="error"><strong>Error:</strong> {{ .Error }}</p>
        {{ end }}
        {{ if .Result }}
            <h3>Results:</h3>
            <p><strong>Ciphertext:</strong> <span id="ciphertext">{{ .Result.Ciphertext }}</span></p>
            <p><strong>Decrypted Text:</strong> <span id="decrypted">{{ .Result.Decrypted }}</span></p>
        {{ end }}
    </body>
</html>
`))

type cipherForm struct {
	Key       string `form:"original_key"`
	Plaintext string `form:"plaintext"`
}

type formResult struct {
	Ciphertext string
	Decrypted  string
}

type formPage struct {
	Key       string
	Plaintext string
	Error     string
	Result    *formResult
}

func (a *API) ShowForm(c *gin.Context) {
	c.HTML(http.StatusOK, indexTemplate, formPage{})
}

// SubmitForm encrypts the submitted plaintext and decrypts the ciphertext
// again, showing both.  Invalid input re-renders the form with the error.
func (a *API) SubmitForm(c *gin.Context) {
	var form cipherForm
	if err := c.ShouldBind(&form); err != nil {
		a.metrics.CipherErrors.WithLabelValues(opEncrypt, "invalid_request").Inc()
		c.HTML(http.StatusBadRequest, indexTemplate, formPage{Error: err.Error()})
		return
	}
	page := formPage{Key: form.Key, Plaintext: form.Plaintext}

	ciphertext, err := a.encrypt(form.Plaintext, form.Key)
	if err != nil {
		page.Error = err.Error()
		c.HTML(http.StatusBadRequest, indexTemplate, page)
		return
	}
	decrypted, err := a.decrypt(ciphertext, form.Key)
	if err != nil {
		page.Error = err.Error()
		c.HTML(http.StatusInternalServerError, indexTemplate, page)
		return
	}
	page.Result = &formResult{Ciphertext: ciphertext, Decrypted: decrypted}
	c.HTML(http.StatusOK, indexTemplate, page)
}
