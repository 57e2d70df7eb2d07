package core

import (
	"context"
	"fmt"
	"log"

	"utfpr.edu.br/menfin/internal/prompt"
	"utfpr.edu.br/menfin/internal/store"
)

type ChatService struct {
	dbStore      RecordStore
	completer    Completer
	queue        *ChatQueue
	board        *StateBoard
	historyLimit int
}

func NewChatService(db RecordStore, completer Completer, queue *ChatQueue, board *StateBoard, historyLimit int) *ChatService {
	return &ChatService{
		dbStore:      db,
		completer:    completer,
		queue:        queue,
		board:        board,
		historyLimit: historyLimit,
	}
}

// ChatView is the conversation as the chat screen shows it.
type ChatView struct {
	Messages     []store.ChatMessage `json:"messages"`
	Pending      []PendingTurn       `json:"pending"`
	MentorTyping bool                `json:"mentor_typing"`
}

func (s *ChatService) GetChat(ctx context.Context, userID int64) (*ChatView, error) {
	messages, err := s.dbStore.ListChatHistory(ctx, userID, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to get chat history: %w", err)
	}
	if messages == nil {
		messages = []store.ChatMessage{}
	}
	pending := s.queue.Pending(userID)
	if pending == nil {
		pending = []PendingTurn{}
	}
	return &ChatView{
		Messages:     messages,
		Pending:      pending,
		MentorTyping: s.queue.Busy(userID),
	}, nil
}

// PostMessage queues the user's message behind any earlier ones and returns
// the mentor's reply once it has been generated and stored.
func (s *ChatService) PostMessage(ctx context.Context, userID int64, text string) (*store.ChatMessage, error) {
	return s.queue.Submit(ctx, userID, text, func(ctx context.Context) (*store.ChatMessage, error) {
		return s.reply(ctx, userID, text)
	})
}

func (s *ChatService) reply(ctx context.Context, userID int64, text string) (*store.ChatMessage, error) {
	profile, err := s.dbStore.GetProfile(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load profile: %w", err)
	}
	if profile == nil {
		s.board.Fail(userID, FeatureChat, MsgProfileMissing)
		return nil, ErrProfileMissing
	}

	if err := s.board.Begin(userID, FeatureChat); err != nil {
		return nil, err
	}

	// The user message stays stored even when the mentor fails to answer.
	userMsg := store.ChatMessage{UserID: userID, Sender: store.SenderUser, Text: text}
	if err := s.dbStore.AppendChatMessage(ctx, &userMsg); err != nil {
		s.board.Fail(userID, FeatureChat, err.Error())
		return nil, fmt.Errorf("failed to store user message: %w", err)
	}

	transactions, err := s.dbStore.ListTransactions(ctx, userID, nil)
	if err != nil {
		s.board.Fail(userID, FeatureChat, err.Error())
		return nil, fmt.Errorf("failed to load transactions: %w", err)
	}
	feedback, err := s.dbStore.ListFeedback(ctx, userID)
	if err != nil {
		s.board.Fail(userID, FeatureChat, err.Error())
		return nil, fmt.Errorf("failed to load feedback: %w", err)
	}
	history, err := s.dbStore.ListChatHistory(ctx, userID, s.historyLimit)
	if err != nil {
		s.board.Fail(userID, FeatureChat, err.Error())
		return nil, fmt.Errorf("failed to load chat history: %w", err)
	}

	p := prompt.BuildChatPrompt(*profile, transactions, history, feedback)
	answer, err := s.completer.Complete(ctx, p)
	if err != nil {
		log.Printf("Error generating mentor reply for user %d: %v", userID, err)
		mErr := answerFailed(err)
		s.board.Fail(userID, FeatureChat, mErr.Message)
		return nil, mErr
	}

	mentorMsg := store.ChatMessage{UserID: userID, Sender: store.SenderMentor, Text: answer}
	if err := s.dbStore.AppendChatMessage(ctx, &mentorMsg); err != nil {
		s.board.Fail(userID, FeatureChat, err.Error())
		return nil, fmt.Errorf("failed to store mentor message: %w", err)
	}
	s.board.Succeed(userID, FeatureChat)
	return &mentorMsg, nil
}
