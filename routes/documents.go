package routes

import (
	"fmt"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/hibiken/asynq"
	"go.mongodb.org/mongo-driver/mongo"

	"techdocs-rag-platform/internal/config"
	"techdocs-rag-platform/internal/queue"
	"techdocs-rag-platform/internal/storage"
	"techdocs-rag-platform/models"
	"techdocs-rag-platform/services"
	"techdocs-rag-platform/utils"
)

const downloadURLTTL = time.Hour

// SetupDocumentRoutes wires the document lifecycle endpoints: upload,
// status, structure, download URL, delete.
func SetupDocumentRoutes(router *gin.Engine, cfg *config.Config, documents *services.DocumentStore, blobs *storage.S3Store, structures *services.StructureStore, tasks *asynq.Client) {
	docs := router.Group("/documents")

	docs.POST("", func(c *gin.Context) {
		file, header, err := c.Request.FormFile("file")
		if err != nil {
			utils.RespondWithBadRequest(c, "file is required", gin.H{"error": err.Error()})
			return
		}
		defer file.Close()

		if header.Size == 0 || header.Size > cfg.MaxFileSize {
			utils.RespondWithBadRequest(c, fmt.Sprintf("file size must be between 1 and %d bytes", cfg.MaxFileSize), nil)
			return
		}
		if !strings.HasSuffix(strings.ToLower(header.Filename), ".pdf") {
			utils.RespondWithBadRequest(c, "only PDF files (.pdf extension) are allowed", nil)
			return
		}

		documentID := uuid.NewString()
		sourceKey := fmt.Sprintf("documents/%s/%s", documentID, filepath.Base(header.Filename))

		ctx := c.Request.Context()
		if err := blobs.Upload(ctx, sourceKey, file, "application/pdf"); err != nil {
			utils.RespondWithInternalError(c, "failed to store document", gin.H{"error": err.Error()})
			return
		}

		meta := models.UploadMetadata{
			Filename:   header.Filename,
			Category:   c.PostForm("category"),
			UploadedBy: c.PostForm("uploaded_by"),
		}

		doc := &models.Document{
			DocumentID: documentID,
			Filename:   header.Filename,
			SourceKey:  sourceKey,
			Metadata:   meta,
		}
		if err := documents.Create(ctx, doc); err != nil {
			blobs.Delete(ctx, sourceKey)
			utils.RespondWithInternalError(c, "failed to create document record", gin.H{"error": err.Error()})
			return
		}

		task, err := queue.NewIndexDocumentTask(documentID, sourceKey, meta)
		if err != nil {
			utils.RespondWithInternalError(c, "failed to create indexing task", gin.H{"error": err.Error()})
			return
		}
		info, err := tasks.EnqueueContext(ctx, task)
		if err != nil {
			documents.MarkFailed(ctx, documentID, "failed to enqueue indexing: "+err.Error())
			utils.RespondWithInternalError(c, "failed to enqueue indexing", gin.H{"error": err.Error()})
			return
		}

		c.JSON(http.StatusAccepted, models.UploadResponse{
			ID:       documentID,
			Filename: header.Filename,
			Status:   models.StatusUploading,
			TaskID:   info.ID,
			Message:  "document accepted for indexing",
		})
	})

	docs.GET("", func(c *gin.Context) {
		list, err := documents.List(c.Request.Context())
		if err != nil {
			utils.RespondWithInternalError(c, "failed to list documents", gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"documents": list})
	})

	docs.GET("/:id/status", func(c *gin.Context) {
		doc, err := documents.Get(c.Request.Context(), c.Param("id"))
		if err != nil {
			if err == mongo.ErrNoDocuments {
				utils.RespondWithNotFound(c, "document not found")
				return
			}
			utils.RespondWithInternalError(c, "failed to load document", gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"id":            doc.DocumentID,
			"status":        doc.Status,
			"chunk_count":   doc.ChunkCount,
			"error_message": doc.ErrorMessage,
		})
	})

	docs.GET("/:id/structure", func(c *gin.Context) {
		// Absent means "not indexed yet", not an error.
		mapping, ok := structures.Get(c.Request.Context(), c.Param("id"))
		if !ok {
			utils.RespondWithNotFound(c, "document structure not available")
			return
		}
		c.JSON(http.StatusOK, mapping)
	})

	docs.GET("/:id/download-url", func(c *gin.Context) {
		ctx := c.Request.Context()
		doc, err := documents.Get(ctx, c.Param("id"))
		if err != nil {
			utils.RespondWithNotFound(c, "document not found")
			return
		}
		url := blobs.PresignedURL(ctx, doc.SourceKey, downloadURLTTL)
		if url == "" {
			utils.RespondWithInternalError(c, "failed to generate download URL", nil)
			return
		}
		c.JSON(http.StatusOK, gin.H{"url": url, "expires_in": int(downloadURLTTL.Seconds())})
	})

	docs.DELETE("/:id", func(c *gin.Context) {
		ctx := c.Request.Context()
		documentID := c.Param("id")

		doc, err := documents.Get(ctx, documentID)
		if err != nil {
			utils.RespondWithNotFound(c, "document not found")
			return
		}

		// Blob and mapping cleanup; vectors are overwritten on reindex and
		// filtered out of search by document id.
		if err := blobs.Delete(ctx, doc.SourceKey); err != nil {
			utils.RespondWithInternalError(c, "failed to delete document blob", gin.H{"error": err.Error()})
			return
		}
		structures.Delete(ctx, documentID)
		if err := documents.MarkDeleted(ctx, documentID); err != nil {
			utils.RespondWithInternalError(c, "failed to mark document deleted", gin.H{"error": err.Error()})
			return
		}

		c.JSON(http.StatusOK, gin.H{"id": documentID, "status": models.StatusDeleted})
	})
}
