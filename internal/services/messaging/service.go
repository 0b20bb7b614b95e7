package messaging

import (
	"context"
	"fmt"
	"math/rand"
	"sync"
	"time"
)

// ExpiredMessagesVersion is bumped whenever expiredMessages changes
const ExpiredMessagesVersion = 1

var expiredMessages = []string{
	"Shoot. We left it out too long, and the ping expired",
	"Arena is dead and this unplayed ping proves it",
	"Maybe the ping would fill up if wife came back",
	"*Surely* next ping will fill up right?",
}

// ExpiredMessages returns a copy of the current expired flavor table
func ExpiredMessages() []string {
	return append([]string(nil), expiredMessages...)
}

// service implements the Service interface
type service struct {
	// rand.Rand isn't safe for concurrent use
	mu   sync.Mutex
	rand *rand.Rand
}

// NewService creates a new messaging service
func NewService(cfg *Config) (Service, error) {
	if cfg == nil {
		cfg = &Config{}
	}

	random := cfg.Rand
	if random == nil {
		seed := cfg.Seed
		if seed == 0 {
			seed = time.Now().UnixNano()
		}
		random = rand.New(rand.NewSource(seed))
	}

	return &service{
		rand: random,
	}, nil
}

func (s *service) pick(messages []string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return messages[s.rand.Intn(len(messages))]
}

// GetExpiredMessage returns a random line from the expired flavor table
func (s *service) GetExpiredMessage(ctx context.Context, input *GetExpiredMessageInput) (*GetExpiredMessageOutput, error) {
	return &GetExpiredMessageOutput{
		Title:   "Expired ping",
		Message: s.pick(expiredMessages),
		Version: ExpiredMessagesVersion,
	}, nil
}

// GetCancelledMessage names the author who backed out
func (s *service) GetCancelledMessage(ctx context.Context, input *GetCancelledMessageInput) (*GetCancelledMessageOutput, error) {
	if input == nil || input.AuthorID == "" {
		return nil, fmt.Errorf("author ID cannot be empty")
	}

	return &GetCancelledMessageOutput{
		Title:   "Cancelled ping",
		Message: fmt.Sprintf("No, that wasn't a ghost... it just looks like <@%s> backed out!", input.AuthorID),
	}, nil
}

// GetReadyMessage returns the announcement for a full group
func (s *service) GetReadyMessage(ctx context.Context, input *GetReadyMessageInput) (*GetReadyMessageOutput, error) {
	if input == nil {
		return nil, fmt.Errorf("input cannot be nil")
	}

	return &GetReadyMessageOutput{
		Title:   fmt.Sprintf("Everyone's ready! [%d/%d]", input.Count, input.Required),
		Message: "Good luck everyone! Make wife proud!",
	}, nil
}

// GetUsageMessage explains how to post a ping with a ratio
func (s *service) GetUsageMessage(ctx context.Context, input *GetUsageMessageInput) (*GetUsageMessageOutput, error) {
	role := "the LFG role"
	if input != nil && input.FacadeRoleID != "" {
		role = fmt.Sprintf("<@&%s>", input.FacadeRoleID)
	}

	return &GetUsageMessageOutput{
		Title: "How many are you looking for?",
		Message: fmt.Sprintf("Ping %s along with how many players you have and how many you need, like `2/4`.\n"+
			"Anyone you mention in the same message is counted as already in.", role),
	}, nil
}
