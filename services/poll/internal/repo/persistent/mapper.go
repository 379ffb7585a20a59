package persistent

import (
	"civic-board/services/poll/internal/entity"
	"civic-board/services/poll/internal/model"
)

func ToPollEntity(m *model.PollModel) *entity.Poll {
	if m == nil {
		return nil
	}

	poll := &entity.Poll{
		ID:             m.ID,
		PostID:         m.PostID,
		Question:       m.Question,
		ClosesAt:       m.ClosesAt,
		AllowsMultiple: m.AllowsMultiple,
		CreatedAt:      m.CreatedAt,
		UpdatedAt:      m.UpdatedAt,
	}

	if len(m.Options) > 0 {
		poll.Options = make([]entity.PollOption, len(m.Options))
		for i, o := range m.Options {
			poll.Options[i] = entity.PollOption{ID: o.ID, Text: o.Text, Tally: o.Tally}
		}
	}

	return poll
}

func ToPollView(m *model.PollModel, closed bool, selected map[string]bool) *entity.PollView {
	if m == nil {
		return nil
	}

	view := &entity.PollView{
		PollID:         m.ID,
		PostID:         m.PostID,
		Question:       m.Question,
		ClosesAt:       m.ClosesAt,
		AllowsMultiple: m.AllowsMultiple,
		Closed:         closed,
		Options:        make([]entity.OptionView, len(m.Options)),
	}

	for i, o := range m.Options {
		view.Options[i] = entity.OptionView{
			ID:       o.ID,
			Text:     o.Text,
			Tally:    o.Tally,
			Selected: selected[o.ID],
		}
	}

	return view
}
