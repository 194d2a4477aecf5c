package server

import (
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/googleinterns/backstory/internal/db"
	"github.com/googleinterns/backstory/internal/perspective"
	"github.com/googleinterns/backstory/internal/story"
)

const (
	// uploadField is the multipart form field carrying the image.
	uploadField = "image"

	// maxUploadBytes caps how much image data is read from a request.
	maxUploadBytes = 10 << 20 // 10 MiB

	defaultListLimit = 1
	maxListLimit     = 50
)

type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) handleHealthz(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

// handleCreateBackstory accepts a multipart image upload, runs the
// backstory pipeline, and returns the stored record.
func (s *Server) handleCreateBackstory(c echo.Context) error {
	fileHeader, err := c.FormFile(uploadField)
	if err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "please upload a valid image"})
	}

	file, err := fileHeader.Open()
	if err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "could not read uploaded image"})
	}
	defer file.Close()

	image, err := io.ReadAll(io.LimitReader(file, maxUploadBytes))
	if err != nil || len(image) == 0 {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "please upload a valid image"})
	}

	mimeType := fileHeader.Header.Get("Content-Type")
	if mimeType == "" {
		mimeType = http.DetectContentType(image)
	}

	backstory, err := s.pipeline.CreateBackstory(c.Request().Context(), image, mimeType)
	if err != nil {
		switch {
		case errors.Is(err, perspective.ErrInappropriate):
			return c.JSON(http.StatusUnprocessableEntity, errorResponse{
				Error: "no appropriate backstory was found for your image, please try again with another image",
			})
		case errors.Is(err, story.ErrExhaustedRetries):
			return c.JSON(http.StatusBadGateway, errorResponse{
				Error: "there was an error in your backstory generation, please try again",
			})
		default:
			slog.Error("backstory creation failed", "error", err)
			return c.JSON(http.StatusInternalServerError, errorResponse{
				Error: "there was an error in your backstory generation, please try again",
			})
		}
	}

	return c.JSON(http.StatusCreated, backstory)
}

// handleListBackstories returns the most recent stored backstories,
// defaulting to just the latest one.
func (s *Server) handleListBackstories(c echo.Context) error {
	limit := defaultListLimit
	if raw := c.QueryParam("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			return c.JSON(http.StatusBadRequest, errorResponse{Error: "limit must be a positive integer"})
		}
		limit = min(parsed, maxListLimit)
	}

	backstories, err := s.pipeline.RecentBackstories(c.Request().Context(), limit)
	if err != nil {
		slog.Error("listing backstories failed", "error", err)
		return c.JSON(http.StatusInternalServerError, errorResponse{Error: "could not load backstories"})
	}
	if backstories == nil {
		backstories = []db.Backstory{}
	}

	return c.JSON(http.StatusOK, backstories)
}
