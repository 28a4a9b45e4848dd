package service

import (
	"context"
	"time"

	"github.com/boogo/backend/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ContentService manages chapter text and the per-user reading cursor.
// The chapter index on Book mirrors the book_contents collection 1:1 by
// (book_id, chapter_number); both sides change in one transaction.
type ContentService struct {
	Books    BookRepository
	Contents ContentRepository
	Progress ProgressRepository
	Tx       TxRunner
}

type CreateChapterInput struct {
	ChapterNumber int    `json:"chapter_number" validate:"required,gt=0"`
	Title         string `json:"title" validate:"required"`
	Content       string `json:"content" validate:"required"`
}

type UpdateChapterInput struct {
	Title   string `json:"title" validate:"required"`
	Content string `json:"content" validate:"required"`
}

func (s *ContentService) CreateChapter(ctx context.Context, bookID primitive.ObjectID, in CreateChapterInput) (*models.BookContent, error) {
	existing, err := s.Contents.ByBookAndChapter(ctx, bookID, in.ChapterNumber)
	if err != nil {
		return nil, Internal("failed to check chapter", err)
	}
	if existing != nil {
		return nil, Conflict("Chapter already exists. Use PATCH to update.")
	}
	if err := s.requireBook(ctx, bookID); err != nil {
		return nil, err
	}

	content := &models.BookContent{
		BookID:        bookID,
		ChapterNumber: in.ChapterNumber,
		Title:         in.Title,
		Content:       in.Content,
	}
	err = s.Tx.InTransaction(ctx, func(ctx context.Context) error {
		id, err := s.Contents.Insert(ctx, content)
		if err != nil {
			return err
		}
		content.ID = id
		return s.Books.PushChapter(ctx, bookID, models.Chapter{
			ChapterNumber: in.ChapterNumber,
			Title:         in.Title,
		})
	})
	if err != nil {
		if isDup(err) {
			return nil, Conflict("Chapter already exists. Use PATCH to update.")
		}
		return nil, Internal("failed to create chapter", err)
	}
	return content, nil
}

// Read returns chapter text and moves the caller's reading cursor.
// With a chapter number it jumps there; without one it resumes from the
// cursor (chapter 1 when the user has never read this book). Either way
// there is exactly one progress document per (user, book) afterwards.
func (s *ContentService) Read(ctx context.Context, userID, bookID primitive.ObjectID, chapterNo *int) (*models.BookContent, error) {
	if err := s.requireBook(ctx, bookID); err != nil {
		return nil, err
	}

	target := 1
	if chapterNo != nil {
		target = *chapterNo
	} else {
		progress, err := s.Progress.ByUserAndBook(ctx, userID, bookID)
		if err != nil {
			return nil, Internal("failed to load reading progress", err)
		}
		if progress != nil {
			target = progress.ChapterID
		}
	}

	content, err := s.Contents.ByBookAndChapter(ctx, bookID, target)
	if err != nil {
		return nil, Internal("failed to load chapter", err)
	}
	if content == nil {
		if chapterNo != nil {
			return nil, NotFound("Chapter not found")
		}
		return nil, NotFound("No chapters found in this book")
	}

	if err := s.Progress.Upsert(ctx, userID, bookID, target, time.Now()); err != nil {
		return nil, Internal("failed to record reading progress", err)
	}
	return content, nil
}

func (s *ContentService) UpdateChapter(ctx context.Context, bookID primitive.ObjectID, chapterNo int, in UpdateChapterInput) (*models.BookContent, error) {
	if err := s.requireBook(ctx, bookID); err != nil {
		return nil, err
	}
	content, err := s.requireChapter(ctx, bookID, chapterNo)
	if err != nil {
		return nil, err
	}
	err = s.Tx.InTransaction(ctx, func(ctx context.Context) error {
		if err := s.Contents.Update(ctx, content.ID, in.Title, in.Content); err != nil {
			return err
		}
		return s.Books.SetChapterTitle(ctx, bookID, chapterNo, in.Title)
	})
	if err != nil {
		return nil, Internal("failed to update chapter", err)
	}
	content.Title = in.Title
	content.Content = in.Content
	return content, nil
}

func (s *ContentService) DeleteChapter(ctx context.Context, bookID primitive.ObjectID, chapterNo int) error {
	if err := s.requireBook(ctx, bookID); err != nil {
		return err
	}
	content, err := s.requireChapter(ctx, bookID, chapterNo)
	if err != nil {
		return err
	}
	err = s.Tx.InTransaction(ctx, func(ctx context.Context) error {
		if err := s.Contents.Delete(ctx, content.ID); err != nil {
			return err
		}
		return s.Books.PullChapter(ctx, bookID, chapterNo)
	})
	if err != nil {
		return Internal("failed to delete chapter", err)
	}
	return nil
}

func (s *ContentService) requireBook(ctx context.Context, bookID primitive.ObjectID) error {
	book, err := s.Books.ByID(ctx, bookID)
	if err != nil {
		return Internal("failed to load book", err)
	}
	if book == nil {
		return NotFound("Book not found")
	}
	return nil
}

func (s *ContentService) requireChapter(ctx context.Context, bookID primitive.ObjectID, chapterNo int) (*models.BookContent, error) {
	content, err := s.Contents.ByBookAndChapter(ctx, bookID, chapterNo)
	if err != nil {
		return nil, Internal("failed to load chapter", err)
	}
	if content == nil {
		return nil, NotFound("Chapter not found")
	}
	return content, nil
}
