/*
Copyright © 2025 The anuvad authors

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package cmd

import (
	"bytes"
	"errors"
	"fmt"
	"html/template"
	"log/slog"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gomarkdown/markdown"
	mdhtml "github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/minilingo/anuvad/internal/detector"
	"github.com/minilingo/anuvad/internal/language"
	"github.com/minilingo/anuvad/internal/translator"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the interactive translation form",
	Long: `Serve a single-page web form that translates between English and
Hindi, plus a small JSON API:

  POST /api/translate   {"text": ..., "source": ..., "target": ...}
  GET  /api/languages   supported language codes`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringP("port", "p", "3000", "port to serve on")
	viper.BindPFlag("serve.port", serveCmd.Flags().Lookup("port"))
}

func runServe(cmd *cobra.Command, args []string) error {
	tr, err := newTranslator()
	if err != nil {
		return err
	}
	det := detector.New()

	page, err := renderIndexPage()
	if err != nil {
		return fmt.Errorf("failed to render index page: %w", err)
	}

	app := fiber.New(fiber.Config{
		AppName: "anuvad " + version,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			var fiberErr *fiber.Error
			if errors.As(err, &fiberErr) {
				code = fiberErr.Code
			}
			return c.Status(code).JSON(fiber.Map{"message": err.Error()})
		},
	})

	app.Get("/", func(c *fiber.Ctx) error {
		c.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)
		return c.SendString(page)
	})

	app.Get("/api/languages", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"languages": language.Supported()})
	})

	app.Post("/api/translate", handleTranslate(tr, det))

	port := viper.GetString("serve.port")
	slog.Info("serving translation form", "port", port)
	return app.Listen(":" + port)
}

type translateRequest struct {
	Text   string `json:"text"`
	Source string `json:"source"`
	Target string `json:"target"`
}

type translateResponse struct {
	ID          string `json:"id"`
	Translation string `json:"translation"`
	Source      string `json:"source"`
	Target      string `json:"target"`
	Warning     string `json:"warning,omitempty"`
}

func handleTranslate(tr *translator.Translator, det *detector.Detector) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req translateRequest
		if err := c.BodyParser(&req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
		}

		id := uuid.New().String()

		src := req.Source
		if src == "" || src == "auto" {
			if code, ok := det.Detect(req.Text); ok {
				src = string(code)
			}
		}

		start := time.Now()
		out, err := tr.Translate(c.Context(), req.Text, src, req.Target)
		if err != nil {
			slog.Error("translation failed", "id", id, "error", err)
			if errors.Is(err, language.ErrUnsupported) || errors.Is(err, language.ErrSamePair) {
				return fiber.NewError(fiber.StatusBadRequest, err.Error())
			}
			return fiber.NewError(fiber.StatusBadGateway, err.Error())
		}

		resp := translateResponse{
			ID:          id,
			Translation: out,
			Source:      src,
			Target:      req.Target,
		}
		if strings.TrimSpace(out) == "" {
			resp.Warning = "Translation is empty. Try a different sentence."
		}

		slog.Info("translated", "id", id, "direction", src+"-"+req.Target, "latency", time.Since(start))
		return c.JSON(resp)
	}
}

const howItWorksMD = `- **Tokenization**: text → subword IDs
- **Model**: MarianMT generates target-language tokens (beam search).
- **Decoding**: tokens → human-readable text`

func howItWorksHTML() template.HTML {
	p := parser.NewWithExtensions(parser.CommonExtensions)
	doc := p.Parse([]byte(howItWorksMD))
	renderer := mdhtml.NewRenderer(mdhtml.RendererOptions{Flags: mdhtml.CommonFlags})
	return template.HTML(markdown.Render(doc, renderer))
}

var indexTemplate = template.Must(template.New("index").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>anuvad — Mini Language Translator</title>
<style>
body { font-family: sans-serif; max-width: 640px; margin: 2rem auto; padding: 0 1rem; }
textarea { width: 100%; height: 8rem; font-size: 1rem; }
select, button { font-size: 1rem; padding: 0.3rem 0.8rem; }
#result { margin-top: 1rem; padding: 1rem; border-radius: 4px; display: none; white-space: pre-wrap; }
#result.success { display: block; background: #e6f4ea; }
#result.warning { display: block; background: #fef7e0; }
#result.error { display: block; background: #fce8e6; }
details { margin-top: 2rem; color: #555; }
</style>
</head>
<body>
<h1>anuvad</h1>
<p>Translate between English and Hindi using pretrained MarianMT models.</p>
<label for="direction">Translation direction</label><br>
<select id="direction">
{{range .Directions}}<option value="{{.Source}}|{{.Target}}">{{.Label}}</option>
{{end}}</select>
<p><textarea id="text" placeholder="Type your sentence here…"></textarea></p>
<button id="go">Translate</button>
<div id="result"></div>
<details>
<summary>How it works (Seq2Seq pipeline)</summary>
{{.HowItWorks}}
</details>
<script>
document.getElementById('go').addEventListener('click', async () => {
  const [source, target] = document.getElementById('direction').value.split('|');
  const text = document.getElementById('text').value;
  const result = document.getElementById('result');
  result.className = '';
  result.textContent = 'Translating…';
  result.style.display = 'block';
  try {
    const resp = await fetch('/api/translate', {
      method: 'POST',
      headers: {'Content-Type': 'application/json'},
      body: JSON.stringify({text, source, target}),
    });
    const body = await resp.json();
    if (!resp.ok) {
      result.className = 'error';
      result.textContent = 'Translation failed: ' + (body.message || resp.statusText);
    } else if (body.warning) {
      result.className = 'warning';
      result.textContent = body.warning;
    } else {
      result.className = 'success';
      result.textContent = body.translation;
    }
  } catch (err) {
    result.className = 'error';
    result.textContent = 'Translation failed: ' + err;
  }
});
</script>
</body>
</html>
`))

type direction struct {
	Source language.Code
	Target language.Code
	Label  string
}

func renderIndexPage() (string, error) {
	names := map[language.Code]string{
		language.English: "English",
		language.Hindi:   "Hindi",
	}

	var directions []direction
	for _, src := range language.Supported() {
		for _, tgt := range language.Supported() {
			if src == tgt {
				continue
			}
			directions = append(directions, direction{
				Source: src,
				Target: tgt,
				Label:  fmt.Sprintf("%s → %s", names[src], names[tgt]),
			})
		}
	}

	var buf bytes.Buffer
	err := indexTemplate.Execute(&buf, struct {
		Directions []direction
		HowItWorks template.HTML
	}{
		Directions: directions,
		HowItWorks: howItWorksHTML(),
	})
	if err != nil {
		return "", err
	}
	return buf.String(), nil
}
