package handler

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"time"

	"github.com/gofiber/fiber/v2"

	"audiodrop/internal/model"
	"audiodrop/internal/player"
	"audiodrop/internal/service"
)

// EmptyListMessage is shown instead of the list when nothing is stored.
const EmptyListMessage = "No audio files uploaded yet"

//go:embed templates/index.html
var templatesFS embed.FS

var pageTmpl = template.Must(template.ParseFS(templatesFS, "templates/index.html"))

type pageRow struct {
	ID         string
	Name       string
	Size       string
	Date       string
	UploadedAt string
	Playing    bool
}

type pageData struct {
	Accept string
	Empty  string
	Rows   []pageRow
}

// FormatSize renders a byte count in megabytes with two decimals.
func FormatSize(n int64) string {
	return fmt.Sprintf("%.2f MB", float64(n)/(1024*1024))
}

func newPageRow(rec model.AudioRecord, state player.State) pageRow {
	return pageRow{
		ID:         rec.ID,
		Name:       rec.Name,
		Size:       FormatSize(rec.Size),
		Date:       rec.UploadedAt.UTC().Format("2006-01-02"),
		UploadedAt: rec.UploadedAt.UTC().Format(time.RFC3339Nano),
		Playing:    state == player.Playing,
	}
}

// Page renders the upload page with the current list. A fresh page starts
// with idle audio elements, so every row is paused before rendering.
func Page(svc service.AudioService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		res, err := svc.List(c.UserContext())
		if err != nil {
			return writeServiceError(c, err)
		}
		svc.ResetPlayback()

		data := pageData{
			Accept: svc.AcceptedMIME(),
			Empty:  EmptyListMessage,
			Rows:   make([]pageRow, 0, len(res.Items)),
		}
		for _, rec := range res.Items {
			data.Rows = append(data.Rows, newPageRow(rec, svc.State(rec.ID)))
		}

		var buf bytes.Buffer
		if err := pageTmpl.Execute(&buf, data); err != nil {
			return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
		}
		c.Type("html", "utf-8")
		return c.Send(buf.Bytes())
	}
}
