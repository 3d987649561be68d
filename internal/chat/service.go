// Package chat composes the search pipeline: extract criteria from the
// user's message, execute them against the catalog, render a localized
// reply.
package chat

import (
	"context"
	"log"

	"smartlibrary/internal/entity"
	"smartlibrary/internal/search"
)

const (
	ResponseTypeText  = "text"
	ResponseTypeBooks = "books"
	ResponseTypeError = "error"
)

// Reply is the wire shape of a chat answer.
type Reply struct {
	Response     string        `json:"response,omitempty"`
	Success      bool          `json:"success"`
	Error        string        `json:"error,omitempty"`
	Books        []entity.Book `json:"books,omitempty"`
	ResponseType string        `json:"responseType"`
}

type Service struct {
	extractor *search.Extractor
	executor  *search.Executor
}

func NewService(extractor *search.Extractor, executor *search.Executor) *Service {
	return &Service{extractor: extractor, executor: executor}
}

// Chat runs the pipeline for one message. It always returns a well formed
// reply: infrastructure failures and panics become the localized error
// message rather than propagating to the handler.
func (s *Service) Chat(ctx context.Context, message, language string) (reply Reply) {
	if language == "" {
		language = "bn+en"
	}

	defer func() {
		if r := recover(); r != nil {
			log.Printf("chat: recovered from panic: %v", r)
			reply = errorReply(language)
		}
	}()

	criteria := s.extractor.Extract(ctx, message)
	log.Printf("chat: extracted criteria: %s", criteria.String())

	books, err := s.executor.Execute(ctx, criteria)
	if err != nil {
		log.Printf("chat: search failed: %v", err)
		return errorReply(language)
	}

	response := search.Render(books, criteria, language)
	if len(books) == 0 {
		return Reply{Response: response, Success: true, ResponseType: ResponseTypeText}
	}
	return Reply{Response: response, Success: true, Books: books, ResponseType: ResponseTypeBooks}
}

func errorReply(language string) Reply {
	return Reply{
		Success:      false,
		Error:        search.RenderError(language),
		ResponseType: ResponseTypeError,
	}
}
