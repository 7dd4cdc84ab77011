package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/technotes/internal/common"
	"github.com/dmitrijs2005/technotes/internal/server/models"
	"github.com/dmitrijs2005/technotes/internal/server/repositories/notes"
	"github.com/dmitrijs2005/technotes/internal/server/repositories/users"
	"github.com/dmitrijs2005/technotes/internal/validation"
	"golang.org/x/sync/errgroup"
)

const (
	MsgNoNotesFound       = "No notes found"
	MsgNoteNotFound       = "Note not found"
	MsgNoteIDRequired     = "Note ID required"
	MsgDuplicateNoteTitle = "Duplicate note title"

	// ownerLookupLimit bounds concurrent owner lookups while listing.
	ownerLookupLimit = 8
)

type CreateNoteInput struct {
	User  string `json:"user" validate:"required"`
	Title string `json:"title" validate:"required"`
	Text  string `json:"text" validate:"required"`
}

type UpdateNoteInput struct {
	ID        string `json:"id" validate:"required"`
	User      string `json:"user" validate:"required"`
	Title     string `json:"title" validate:"required"`
	Text      string `json:"text" validate:"required"`
	Completed *bool  `json:"completed" validate:"required"`
}

type DeleteNoteInput struct {
	ID string `json:"id" validate:"required"`
}

type NoteService struct {
	notes     notes.Repository
	users     users.Repository
	validator *validation.Validator
}

func NewNoteService(n notes.Repository, u users.Repository, v *validation.Validator) *NoteService {
	return &NoteService{notes: n, users: u, validator: v}
}

// List returns every note with its owner's username. Owners that no longer
// exist leave Username empty.
func (s *NoteService) List(ctx context.Context) ([]models.NoteWithUser, error) {
	list, err := s.notes.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list notes: %w", err)
	}
	if len(list) == 0 {
		return nil, common.NewError(common.ErrorNotFound, MsgNoNotesFound)
	}

	out := make([]models.NoteWithUser, len(list))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(ownerLookupLimit)

	for i := range list {
		out[i].Note = list[i]
		g.Go(func() error {
			owner, err := s.users.GetByID(gctx, list[i].User)
			if err != nil {
				if errors.Is(err, common.ErrorNotFound) {
					return nil
				}
				return fmt.Errorf("resolve owner of note %s: %w", list[i].ID, err)
			}
			out[i].Username = owner.Username
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *NoteService) Create(ctx context.Context, in CreateNoteInput) (*models.Note, error) {
	if err := s.validator.Struct(&in, MsgAllFieldsRequired); err != nil {
		return nil, err
	}

	if err := s.ensureOwner(ctx, in.User); err != nil {
		return nil, err
	}

	_, err := s.notes.GetByTitle(ctx, in.Title)
	switch {
	case err == nil:
		return nil, common.NewError(common.ErrorAlreadyExists, MsgDuplicateNoteTitle)
	case !errors.Is(err, common.ErrorNotFound):
		return nil, fmt.Errorf("check title: %w", err)
	}

	note, err := s.notes.Create(ctx, &models.Note{User: in.User, Title: in.Title, Text: in.Text})
	if err != nil {
		if errors.Is(err, common.ErrorAlreadyExists) {
			return nil, common.NewError(common.ErrorAlreadyExists, MsgDuplicateNoteTitle)
		}
		return nil, fmt.Errorf("create note: %w", err)
	}
	return note, nil
}

func (s *NoteService) Update(ctx context.Context, in UpdateNoteInput) (*models.Note, error) {
	if err := s.validator.Struct(&in, MsgAllFieldsRequired); err != nil {
		return nil, err
	}

	note, err := s.getNote(ctx, in.ID)
	if err != nil {
		return nil, err
	}

	if err := s.ensureOwner(ctx, in.User); err != nil {
		return nil, err
	}

	dup, err := s.notes.GetByTitle(ctx, in.Title)
	switch {
	case err == nil && dup.ID != note.ID:
		return nil, common.NewError(common.ErrorAlreadyExists, MsgDuplicateNoteTitle)
	case err != nil && !errors.Is(err, common.ErrorNotFound):
		return nil, fmt.Errorf("check title: %w", err)
	}

	note.User = in.User
	note.Title = in.Title
	note.Text = in.Text
	note.Completed = *in.Completed

	updated, err := s.notes.Update(ctx, note)
	if err != nil {
		switch {
		case errors.Is(err, common.ErrorAlreadyExists):
			return nil, common.NewError(common.ErrorAlreadyExists, MsgDuplicateNoteTitle)
		case errors.Is(err, common.ErrorNotFound):
			return nil, common.NewError(common.ErrorNotFound, MsgNoteNotFound)
		}
		return nil, fmt.Errorf("update note: %w", err)
	}
	return updated, nil
}

// Delete removes a note and returns it as it was before deletion.
func (s *NoteService) Delete(ctx context.Context, in DeleteNoteInput) (*models.Note, error) {
	if err := s.validator.Struct(&in, MsgNoteIDRequired); err != nil {
		return nil, err
	}

	note, err := s.getNote(ctx, in.ID)
	if err != nil {
		return nil, err
	}

	if err := s.notes.Delete(ctx, note.ID); err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.NewError(common.ErrorNotFound, MsgNoteNotFound)
		}
		return nil, fmt.Errorf("delete note: %w", err)
	}
	return note, nil
}

func (s *NoteService) getNote(ctx context.Context, id string) (*models.Note, error) {
	note, err := s.notes.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.NewError(common.ErrorNotFound, MsgNoteNotFound)
		}
		return nil, fmt.Errorf("get note: %w", err)
	}
	return note, nil
}

func (s *NoteService) ensureOwner(ctx context.Context, id string) error {
	if _, err := s.users.GetByID(ctx, id); err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return common.NewError(common.ErrorNotFound, MsgUserNotFound)
		}
		return fmt.Errorf("get owner: %w", err)
	}
	return nil
}
