package handler

import (
	"bytes"
	"context"
	"mime/multipart"
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/utils"

	"audiodrop/internal/ingest"
	"audiodrop/internal/service"
)

// Multipart field names carrying uploaded files.
const (
	filesField = "files"
	fileField  = "file"
)

// RegisterRoutes attaches HTTP routes to the provided Fiber app.
func RegisterRoutes(app *fiber.App, svc service.AudioService) {
	app.Get("/", Page(svc))

	app.Get("/health", HealthCheck(svc))
	app.Get("/healthz", Liveness())

	audio := app.Group("/audio")
	audio.Get("", ListAudio(svc))
	audio.Post("", UploadAudio(svc))
	audio.Get("/:id", GetAudio(svc))
	audio.Delete("/:id", DeleteAudio(svc))
	audio.Get("/:id/stream", StreamAudio(svc))
	audio.Get("/:id/tags", AudioTags(svc))
	audio.Post("/:id/toggle", ToggleAudio(svc))
	audio.Post("/:id/ended", EndedAudio(svc))
}

// recordID copies the id param out of Fiber's reused request buffer.
func recordID(c *fiber.Ctx) string {
	return utils.CopyString(c.Params("id"))
}

// HealthCheck godoc
// @Summary Readiness check
// @Description Reports whether the audio store is reachable
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string
// @Failure 503 {object} errorPayload
// @Router /health [get]
func HealthCheck(svc service.AudioService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
		defer cancel()
		if err := svc.Ping(ctx); err != nil {
			return writeError(c, fiber.StatusServiceUnavailable, "SERVICE_UNAVAILABLE", "dependency unavailable")
		}
		return c.Status(fiber.StatusOK).JSON(fiber.Map{"status": "healthy"})
	}
}

// Liveness is a plain liveness endpoint.
func Liveness() fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	}
}

// ListAudio godoc
// @Summary List audio records
// @Tags audio
// @Produce json
// @Success 200 {object} service.AudioListResult
// @Router /audio [get]
func ListAudio(svc service.AudioService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		res, err := svc.List(c.UserContext())
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(res)
	}
}

// UploadAudio godoc
// @Summary Upload audio files
// @Description Accepts repeated multipart "files" parts; parts with another content type are skipped
// @Tags audio
// @Accept multipart/form-data
// @Produce json
// @Param files formData file true "audio files"
// @Success 201 {object} service.UploadResult
// @Failure 400 {object} errorPayload
// @Failure 422 {object} errorPayload
// @Router /audio [post]
func UploadAudio(svc service.AudioService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		form, err := c.MultipartForm()
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "FILE_REQUIRED", "multipart form with files is required")
		}
		defer form.RemoveAll()

		fhs := make([]*multipart.FileHeader, 0, len(form.File[filesField])+len(form.File[fileField]))
		fhs = append(fhs, form.File[filesField]...)
		fhs = append(fhs, form.File[fileField]...)

		res, err := svc.Upload(c.UserContext(), ingest.FromMultipart(fhs))
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(res)
	}
}

// GetAudio godoc
// @Summary Get one audio record
// @Tags audio
// @Produce json
// @Param id path string true "record id"
// @Success 200 {object} model.AudioRecord
// @Failure 404 {object} errorPayload
// @Router /audio/{id} [get]
func GetAudio(svc service.AudioService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		rec, err := svc.Get(c.UserContext(), recordID(c))
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(rec)
	}
}

// DeleteAudio godoc
// @Summary Delete an audio record
// @Description Deleting an unknown id succeeds without changes
// @Tags audio
// @Param id path string true "record id"
// @Success 204
// @Router /audio/{id} [delete]
func DeleteAudio(svc service.AudioService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := svc.Delete(c.UserContext(), recordID(c)); err != nil {
			return writeServiceError(c, err)
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}

// StreamAudio godoc
// @Summary Stream the stored audio bytes
// @Tags audio
// @Produce audio/mpeg
// @Param id path string true "record id"
// @Param Range header string false "byte range, e.g. bytes=0-1023"
// @Success 200 {file} binary
// @Success 206 {file} binary
// @Failure 404 {object} errorPayload
// @Failure 416 {string} string
// @Router /audio/{id}/stream [get]
func StreamAudio(svc service.AudioService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctype, data, err := svc.Content(c.UserContext(), recordID(c))
		if err != nil {
			return writeServiceError(c, err)
		}
		// ServeContent answers Range and If-Range for the seek bar.
		return adaptor.HTTPHandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set(fiber.HeaderContentType, ctype)
			w.Header().Set(fiber.HeaderCacheControl, "private, max-age=3600")
			http.ServeContent(w, r, "", time.Time{}, bytes.NewReader(data))
		})(c)
	}
}

// AudioTags godoc
// @Summary Read embedded tags
// @Tags audio
// @Produce json
// @Param id path string true "record id"
// @Success 200 {object} metadata.Tags
// @Failure 404 {object} errorPayload
// @Router /audio/{id}/tags [get]
func AudioTags(svc service.AudioService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		tags, err := svc.Tags(c.UserContext(), recordID(c))
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(tags)
	}
}

// ToggleAudio godoc
// @Summary Flip the play state of a row
// @Tags player
// @Produce json
// @Param id path string true "record id"
// @Success 200 {object} player.Transition
// @Failure 404 {object} errorPayload
// @Router /audio/{id}/toggle [post]
func ToggleAudio(svc service.AudioService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		tr, err := svc.Toggle(c.UserContext(), recordID(c))
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(tr)
	}
}

// EndedAudio godoc
// @Summary Report end of media for a row
// @Tags player
// @Produce json
// @Param id path string true "record id"
// @Success 200 {object} player.Transition
// @Failure 404 {object} errorPayload
// @Router /audio/{id}/ended [post]
func EndedAudio(svc service.AudioService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		tr, err := svc.Ended(c.UserContext(), recordID(c))
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(tr)
	}
}
