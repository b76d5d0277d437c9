// Package leaderboard ranks users by likes received on their challenge
// posts, per day and all time.
package leaderboard

import (
	"context"
	"encoding/json"
	"time"

	models "challengeme/model"
	"challengeme/pkg/clock"
	"challengeme/rpc"
)

type TopRequest struct {
	// Period is "daily" or "alltime".
	Period string `json:"period"`
	// Date selects the daily board; defaults to today.
	Date  string `json:"date,omitempty"`
	Limit int64  `json:"limit,omitempty"`
}

type TopResponse struct {
	Entries []models.LeaderboardEntry `json:"entries"`
}

type Handler struct {
	repo  Repository
	clock clock.Clock
}

func NewHandler(repo Repository, clk clock.Clock) *Handler {
	return &Handler{repo: repo, clock: clk}
}

// Top returns the requested board, best first.
func (h *Handler) Top(ctx context.Context, data json.RawMessage) (interface{}, error) {
	var req TopRequest
	if err := json.Unmarshal(data, &req); err != nil {
		return nil, rpc.InvalidArgument("malformed leaderboard request")
	}

	switch req.Period {
	case "alltime":
		entries, err := h.repo.TopAllTime(ctx, req.Limit)
		if err != nil {
			return nil, rpc.Internal("failed to read leaderboard: %v", err)
		}
		return &TopResponse{Entries: entries}, nil

	case "daily", "":
		date := req.Date
		if date == "" {
			date = models.DateOf(h.clock.Now())
		}
		if _, err := time.ParseInLocation(models.DateLayout, date, time.Local); err != nil {
			return nil, rpc.InvalidArgument("date must be a %s date", models.DateLayout)
		}
		entries, err := h.repo.TopDaily(ctx, date, req.Limit)
		if err != nil {
			return nil, rpc.Internal("failed to read leaderboard: %v", err)
		}
		return &TopResponse{Entries: entries}, nil

	default:
		return nil, rpc.InvalidArgument("period must be daily or alltime")
	}
}
