package usecase

import (
	"fmt"
	"strings"
	"time"

	"civic-board/pkg/logger"
	"civic-board/pkg/queue"
	"civic-board/services/poll/internal/entity"
	"civic-board/services/poll/internal/model"
	"civic-board/services/poll/internal/repo/persistent"
)

type PollUseCase interface {
	CreatePoll(postID, userID, question string, options []string, closesAt *time.Time, allowsMultiple bool) (*entity.Poll, error)
	UpdatePoll(pollID, userID, question string, options []string, closesAt *time.Time, allowsMultiple bool) (*entity.Poll, error)
	DeletePoll(pollID, userID string) error
	GetPoll(postID, userID string) (*entity.PollView, error)
	CastBallot(userID, pollID string, optionIDs []string) (*entity.PollView, error)
}

type pollUseCase struct {
	pollRepo    persistent.PollRepository
	postRepo    persistent.PostRepository
	queueClient *queue.Client
	logger      *logger.Logger
}

func NewPollUseCase(
	pollRepo persistent.PollRepository,
	postRepo persistent.PostRepository,
	queueClient *queue.Client,
	logger *logger.Logger,
) PollUseCase {
	return &pollUseCase{
		pollRepo:    pollRepo,
		postRepo:    postRepo,
		queueClient: queueClient,
		logger:      logger,
	}
}

// CreatePoll attaches a poll to a post. Only the post author may do so.
func (uc *pollUseCase) CreatePoll(postID, userID, question string, options []string, closesAt *time.Time, allowsMultiple bool) (*entity.Poll, error) {
	options = trimOptions(options)
	if len(options) == 0 {
		return nil, entity.ErrNoOptions
	}

	exists, err := uc.postRepo.PostExists(postID)
	if err != nil {
		return nil, fmt.Errorf("failed to check post: %w", err)
	}
	if !exists {
		return nil, entity.ErrPostNotFound
	}

	authorID, err := uc.postRepo.PostAuthorID(postID)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve post author: %w", err)
	}
	if authorID != userID {
		return nil, entity.ErrForbidden
	}

	poll := &model.PollModel{
		PostID:         postID,
		Question:       question,
		ClosesAt:       closesAt,
		AllowsMultiple: allowsMultiple,
	}
	for _, text := range options {
		poll.Options = append(poll.Options, model.PollOptionModel{Text: text})
	}

	if err := uc.pollRepo.Create(poll); err != nil {
		if err == entity.ErrPollExists {
			return nil, err
		}
		uc.logger.Error("Failed to create poll for post %s: %v", postID, err)
		return nil, fmt.Errorf("failed to create poll: %w", err)
	}

	return persistent.ToPollEntity(poll), nil
}

// UpdatePoll wholesale-replaces the option set with fresh zero-tally options.
// Ballots cast against the old options are deleted with them.
func (uc *pollUseCase) UpdatePoll(pollID, userID, question string, options []string, closesAt *time.Time, allowsMultiple bool) (*entity.Poll, error) {
	options = trimOptions(options)
	if len(options) == 0 {
		return nil, entity.ErrNoOptions
	}

	if err := uc.checkOwnership(pollID, userID); err != nil {
		return nil, err
	}

	updated, err := uc.pollRepo.Replace(pollID, question, closesAt, allowsMultiple, options)
	if err != nil {
		if err == entity.ErrPollNotFound {
			return nil, err
		}
		uc.logger.Error("Failed to update poll %s: %v", pollID, err)
		return nil, fmt.Errorf("failed to update poll: %w", err)
	}

	return persistent.ToPollEntity(updated), nil
}

func (uc *pollUseCase) DeletePoll(pollID, userID string) error {
	if err := uc.checkOwnership(pollID, userID); err != nil {
		return err
	}
	return uc.pollRepo.Delete(pollID)
}

func (uc *pollUseCase) GetPoll(postID, userID string) (*entity.PollView, error) {
	poll, err := uc.pollRepo.GetByPostID(postID)
	if err != nil {
		return nil, err
	}

	selected := map[string]bool{}
	if userID != "" {
		selected, err = uc.pollRepo.UserSelections(userID, poll.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to load user selections: %w", err)
		}
	}

	closed := poll.ClosesAt != nil && poll.ClosesAt.Before(time.Now())
	return persistent.ToPollView(poll, closed, selected), nil
}

func (uc *pollUseCase) CastBallot(userID, pollID string, optionIDs []string) (*entity.PollView, error) {
	if len(optionIDs) == 0 {
		return nil, entity.ErrNoOptions
	}
	seen := make(map[string]bool, len(optionIDs))
	for _, id := range optionIDs {
		if seen[id] {
			return nil, entity.ErrDuplicateOption
		}
		seen[id] = true
	}

	poll, err := uc.pollRepo.CastBallots(userID, pollID, optionIDs, time.Now())
	if err != nil {
		switch err {
		case entity.ErrPollNotFound, entity.ErrPollClosed, entity.ErrMultipleNotAllowed,
			entity.ErrInvalidOption, entity.ErrDuplicateOption:
			return nil, err
		}
		uc.logger.Error("Failed to cast ballot on poll %s: %v", pollID, err)
		return nil, fmt.Errorf("failed to cast ballot: %w", err)
	}

	uc.notifyBallotCast(userID, poll)

	return persistent.ToPollView(poll, false, seen), nil
}

func (uc *pollUseCase) checkOwnership(pollID, userID string) error {
	poll, err := uc.pollRepo.GetByID(pollID)
	if err != nil {
		return err
	}

	authorID, err := uc.postRepo.PostAuthorID(poll.PostID)
	if err != nil {
		return fmt.Errorf("failed to resolve post author: %w", err)
	}
	if authorID != userID {
		return entity.ErrForbidden
	}
	return nil
}

func (uc *pollUseCase) notifyBallotCast(userID string, poll *model.PollModel) {
	if uc.queueClient == nil {
		return
	}

	go func() {
		task := map[string]interface{}{
			"type":     "ballot",
			"voter_id": userID,
			"poll_id":  poll.ID,
			"post_id":  poll.PostID,
			"priority": 2,
		}
		if err := uc.queueClient.PublishNotificationTask(task); err != nil {
			uc.logger.Error("[NOTIFICATION QUEUE] Failed to publish ballot notification task: %v", err)
		}
	}()
}

func trimOptions(options []string) []string {
	out := options[:0:0]
	for _, o := range options {
		if s := strings.TrimSpace(o); s != "" {
			out = append(out, s)
		}
	}
	return out
}
