package http

import (
	"net/http"

	"repairdesk/internal/core/application/usecases/commands"
	"repairdesk/internal/generated/servers"

	"github.com/labstack/echo/v4"
)

// MaxAttachmentSize caps uploaded files at 20 MiB.
const MaxAttachmentSize = 20 << 20

// UploadAttachment handles POST /api/v1/attachments. The stored reference is
// returned for the caller to send along with a transition.
func (s *Server) UploadAttachment(ctx echo.Context) error {
	if ActorFrom(ctx) == nil {
		return s.fail(ctx, commands.ErrActorIsRequired)
	}
	if s.attachments == nil {
		return ctx.JSON(http.StatusServiceUnavailable, servers.Error{
			Code:    http.StatusServiceUnavailable,
			Message: "Attachment storage is not configured",
		})
	}

	header, err := ctx.FormFile("file")
	if err != nil {
		return badRequest(ctx, "Missing file")
	}
	if header.Size > MaxAttachmentSize {
		return ctx.JSON(http.StatusRequestEntityTooLarge, servers.Error{
			Code:    http.StatusRequestEntityTooLarge,
			Message: "File exceeds the 20 MiB limit",
		})
	}

	file, err := header.Open()
	if err != nil {
		return badRequest(ctx, "Unreadable file")
	}
	defer file.Close()

	contentType := header.Header.Get(echo.HeaderContentType)
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	attachment, err := s.attachments.Upload(ctx.Request().Context(), header.Filename, contentType, file, header.Size)
	if err != nil {
		return s.fail(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, servers.Attachment{
		Name: attachment.Name(),
		Url:  attachment.URL(),
	})
}
