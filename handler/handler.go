package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"vidshare/dto"
	"vidshare/repository"
	"vidshare/service"
)

type ServiceDependencies struct {
	UploadService service.UploadService
	Repo          repository.VideoRepository
}

// UploadVideo handles POST /api/upload: multipart form with a `video` file
// and a `title` field.
func UploadVideo(deps ServiceDependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		fileHeader, err := c.FormFile("video")
		if err != nil {
			c.JSON(http.StatusBadRequest, dto.ErrorResponse{
				Message: "no video file submitted or the file is invalid",
			})
			return
		}

		in := service.UploadInput{
			Title:    c.PostForm("title"),
			Filename: fileHeader.Filename,
			MIMEType: fileHeader.Header.Get("Content-Type"),
			Size:     fileHeader.Size,
			Save: func(dst string) error {
				return c.SaveUploadedFile(fileHeader, dst)
			},
		}

		video, err := deps.UploadService.Upload(c.Request.Context(), in)
		if err != nil {
			if errors.Is(err, service.ErrClientInput) {
				c.JSON(http.StatusBadRequest, dto.ErrorResponse{
					Message: err.Error(),
				})
				return
			}
			c.JSON(http.StatusInternalServerError, dto.ErrorResponse{
				Message: "internal server error while storing the video",
				Error:   err.Error(),
			})
			return
		}

		c.JSON(http.StatusCreated, dto.UploadResponse{
			Message: "video uploaded successfully",
			Video:   dto.NewVideoResponse(video),
		})
	}
}

// ListVideos handles GET /api/videos: every stored video, newest first.
func ListVideos(deps ServiceDependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		videos, err := deps.Repo.ListByUploadDateDesc(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusInternalServerError, dto.ErrorResponse{
				Message: "internal server error while fetching videos",
				Error:   err.Error(),
			})
			return
		}

		out := make([]dto.VideoResponse, 0, len(videos))
		for _, v := range videos {
			out = append(out, dto.NewVideoResponse(v))
		}
		c.JSON(http.StatusOK, out)
	}
}
