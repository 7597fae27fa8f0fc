package api

import (
	"fmt"
	"net/http"

	"lotto/domain/entities"

	"github.com/gin-gonic/gin"
)

// ExportBackup downloads the history in the backup format
func (s *Server) ExportBackup(c *gin.Context) {
	backup, err := s.deps.History.Export(c.Request.Context())
	if err != nil {
		respondDomainError(c, err)
		return
	}

	date := backup.ExportDate
	if len(date) >= 10 {
		date = date[:10]
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=lotto-backup-%s.json", date))
	c.JSON(http.StatusOK, backup)
}

// ImportBackup replaces the history with an uploaded backup
func (s *Server) ImportBackup(c *gin.Context) {
	var backup entities.Backup
	if err := c.ShouldBindJSON(&backup); err != nil {
		RespondWithError(c, http.StatusBadRequest, "Invalid backup file.")
		return
	}

	imported, err := s.deps.History.Import(c.Request.Context(), &backup)
	if err != nil {
		respondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"imported": imported})
}
