package persistent

import (
	"errors"
	"time"

	"civic-board/services/poll/internal/entity"
	"civic-board/services/poll/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type PollRepository interface {
	Create(poll *model.PollModel) error
	GetByID(pollID string) (*model.PollModel, error)
	GetByPostID(postID string) (*model.PollModel, error)
	Replace(pollID, question string, closesAt *time.Time, allowsMultiple bool, optionTexts []string) (*model.PollModel, error)
	Delete(pollID string) error
	CastBallots(userID, pollID string, optionIDs []string, now time.Time) (*model.PollModel, error)
	UserSelections(userID, pollID string) (map[string]bool, error)
}

type pollRepository struct {
	db *gorm.DB
}

func NewPollRepository(db *gorm.DB) PollRepository {
	return &pollRepository{db: db}
}

func (r *pollRepository) Create(poll *model.PollModel) error {
	err := r.db.Create(poll).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return entity.ErrPollExists
	}
	return err
}

func (r *pollRepository) GetByID(pollID string) (*model.PollModel, error) {
	var poll model.PollModel
	err := r.db.Preload("Options", optionOrder).Where("id = ?", pollID).First(&poll).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, entity.ErrPollNotFound
	}
	if err != nil {
		return nil, err
	}
	return &poll, nil
}

func (r *pollRepository) GetByPostID(postID string) (*model.PollModel, error) {
	var poll model.PollModel
	err := r.db.Preload("Options", optionOrder).Where("post_id = ?", postID).First(&poll).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, entity.ErrPollNotFound
	}
	if err != nil {
		return nil, err
	}
	return &poll, nil
}

// Replace rewrites the poll's fields and wholesale-replaces its option set
// with fresh zero-tally options. All ballots on the poll are deleted in the
// same transaction: the old options they referenced no longer exist, and
// removing them keeps every remaining tally equal to its ballot count.
func (r *pollRepository) Replace(pollID, question string, closesAt *time.Time, allowsMultiple bool, optionTexts []string) (*model.PollModel, error) {
	var updated *model.PollModel
	err := r.db.Transaction(func(tx *gorm.DB) error {
		var poll model.PollModel
		if err := tx.Where("id = ?", pollID).First(&poll).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return entity.ErrPollNotFound
			}
			return err
		}

		if err := tx.Where("poll_id = ?", pollID).Delete(&model.BallotModel{}).Error; err != nil {
			return err
		}
		if err := tx.Where("poll_id = ?", pollID).Delete(&model.PollOptionModel{}).Error; err != nil {
			return err
		}

		updates := map[string]interface{}{
			"question":        question,
			"closes_at":       closesAt,
			"allows_multiple": allowsMultiple,
		}
		if err := tx.Model(&poll).Updates(updates).Error; err != nil {
			return err
		}

		for _, text := range optionTexts {
			option := model.PollOptionModel{PollID: pollID, Text: text}
			if err := tx.Create(&option).Error; err != nil {
				return err
			}
		}

		var reloaded model.PollModel
		if err := tx.Preload("Options", optionOrder).Where("id = ?", pollID).First(&reloaded).Error; err != nil {
			return err
		}
		updated = &reloaded
		return nil
	})
	return updated, err
}

func (r *pollRepository) Delete(pollID string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		res := tx.Where("id = ?", pollID).Delete(&model.PollModel{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return entity.ErrPollNotFound
		}
		if err := tx.Where("poll_id = ?", pollID).Delete(&model.BallotModel{}).Error; err != nil {
			return err
		}
		return tx.Where("poll_id = ?", pollID).Delete(&model.PollOptionModel{}).Error
	})
}

// CastBallots replaces the user's selection on a poll inside one transaction.
// Any error rolls the whole call back, prior ballots included. Tally updates
// always travel with the matching ballot insert or delete, which is what
// keeps option.tally equal to the count of live ballots on the option.
func (r *pollRepository) CastBallots(userID, pollID string, optionIDs []string, now time.Time) (*model.PollModel, error) {
	var updated *model.PollModel
	err := r.db.Transaction(func(tx *gorm.DB) error {
		locked := tx
		// SQLite has no FOR UPDATE; its writer lock already serializes casts.
		if tx.Dialector.Name() == "postgres" {
			locked = tx.Clauses(clause.Locking{Strength: "UPDATE"})
		}

		var poll model.PollModel
		if err := locked.Preload("Options").Where("id = ?", pollID).First(&poll).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return entity.ErrPollNotFound
			}
			return err
		}

		if poll.ClosesAt != nil && poll.ClosesAt.Before(now) {
			return entity.ErrPollClosed
		}
		if !poll.AllowsMultiple && len(optionIDs) > 1 {
			return entity.ErrMultipleNotAllowed
		}

		belongs := make(map[string]bool, len(poll.Options))
		for _, o := range poll.Options {
			belongs[o.ID] = true
		}

		// Clear every prior ballot the user holds on this poll, undoing its
		// tally contribution.
		var prior []model.BallotModel
		if err := locked.Where("user_id = ? AND poll_id = ?", userID, pollID).Find(&prior).Error; err != nil {
			return err
		}
		for _, ballot := range prior {
			if err := tx.Model(&model.PollOptionModel{}).
				Where("id = ? AND tally > 0", ballot.OptionID).
				UpdateColumn("tally", gorm.Expr("tally - 1")).Error; err != nil {
				return err
			}
			if err := tx.Where("id = ?", ballot.ID).Delete(&model.BallotModel{}).Error; err != nil {
				return err
			}
		}

		for _, optionID := range optionIDs {
			if !belongs[optionID] {
				return entity.ErrInvalidOption
			}
			if err := tx.Model(&model.PollOptionModel{}).
				Where("id = ?", optionID).
				UpdateColumn("tally", gorm.Expr("tally + 1")).Error; err != nil {
				return err
			}
			ballot := model.BallotModel{UserID: userID, PollID: pollID, OptionID: optionID}
			if err := tx.Create(&ballot).Error; err != nil {
				if errors.Is(err, gorm.ErrDuplicatedKey) {
					return entity.ErrDuplicateOption
				}
				return err
			}
		}

		var reloaded model.PollModel
		if err := tx.Preload("Options", optionOrder).Where("id = ?", pollID).First(&reloaded).Error; err != nil {
			return err
		}
		updated = &reloaded
		return nil
	})
	return updated, err
}

func (r *pollRepository) UserSelections(userID, pollID string) (map[string]bool, error) {
	var ballots []model.BallotModel
	if err := r.db.Where("user_id = ? AND poll_id = ?", userID, pollID).Find(&ballots).Error; err != nil {
		return nil, err
	}
	selected := make(map[string]bool, len(ballots))
	for _, b := range ballots {
		selected[b.OptionID] = true
	}
	return selected, nil
}

func optionOrder(db *gorm.DB) *gorm.DB {
	return db.Order("poll_options.created_at ASC, poll_options.id ASC")
}
