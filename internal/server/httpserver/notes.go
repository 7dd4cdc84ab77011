package httpserver

import (
	"fmt"
	"net/http"

	"github.com/dmitrijs2005/technotes/internal/server/services"
	"github.com/gin-gonic/gin"
)

func (s *HTTPServer) listNotes(c *gin.Context) {
	notes, err := s.notes.List(c.Request.Context())
	if err != nil {
		respondError(c, err, "Unable to retrieve notes")
		return
	}
	c.JSON(http.StatusOK, notes)
}

func (s *HTTPServer) createNote(c *gin.Context) {
	var in services.CreateNoteInput
	if !bindJSON(c, &in, services.MsgAllFieldsRequired) {
		return
	}

	if _, err := s.notes.Create(c.Request.Context(), in); err != nil {
		respondError(c, err, "Unable to create note")
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "New note created"})
}

func (s *HTTPServer) updateNote(c *gin.Context) {
	var in services.UpdateNoteInput
	if !bindJSON(c, &in, services.MsgAllFieldsRequired) {
		return
	}

	note, err := s.notes.Update(c.Request.Context(), in)
	if err != nil {
		respondError(c, err, "Unable to update note")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": fmt.Sprintf("'%s' updated", note.Title)})
}

func (s *HTTPServer) deleteNote(c *gin.Context) {
	var in services.DeleteNoteInput
	if !bindJSON(c, &in, services.MsgNoteIDRequired) {
		return
	}

	note, err := s.notes.Delete(c.Request.Context(), in)
	if err != nil {
		respondError(c, err, "Unable to delete note")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": fmt.Sprintf("Note '%s' with ID %s deleted", note.Title, note.ID),
		"title":   note.Title,
		"id":      note.ID,
	})
}
