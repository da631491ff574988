package storage

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/kwpid/HighCard-V2/internal/storage/models"
)

// TimelineEntry represents a single point in an MMR progression timeline.
type TimelineEntry struct {
	Timestamp   time.Time `json:"timestamp"`
	Date        string    `json:"date"` // Formatted date for display
	MMR         int       `json:"mmr"`
	Rank        string    `json:"rank"` // Formatted rank string (e.g., "Gold II")
	Season      int       `json:"season"`
	IsChange    bool      `json:"is_change"`    // True if MMR changed from previous entry
	IsMilestone bool      `json:"is_milestone"` // True if the rank band changed
}

// Timeline represents a summarized MMR progression over a time range.
type Timeline struct {
	GameType       string           `json:"game_type"`
	StartDate      time.Time        `json:"start_date"`
	EndDate        time.Time        `json:"end_date"`
	Entries        []*TimelineEntry `json:"entries"`
	TotalChanges   int              `json:"total_changes"`
	Milestones     int              `json:"milestones"`
	StartMMR       int              `json:"start_mmr"`
	EndMMR         int              `json:"end_mmr"`
	HighestMMR     int              `json:"highest_mmr"`
	LowestMMR      int              `json:"lowest_mmr"`
	SeasonsCovered []int            `json:"seasons_covered"`
}

// TimelinePeriod defines how to group timeline entries.
type TimelinePeriod string

const (
	PeriodAll     TimelinePeriod = "all"     // Every recorded point
	PeriodDaily   TimelinePeriod = "daily"   // One entry per day (latest)
	PeriodWeekly  TimelinePeriod = "weekly"  // One entry per week (latest)
	PeriodMonthly TimelinePeriod = "monthly" // One entry per month (latest)
)

// GetMMRTimeline summarizes a user's rating progression for one game type.
// period determines the granularity: "all", "daily", "weekly", or "monthly".
func (s *Service) GetMMRTimeline(ctx context.Context, userID, gameType string, start, end time.Time, period TimelinePeriod) (*Timeline, error) {
	history, err := s.GetMMRHistory(ctx, userID, gameType, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to get mmr history: %w", err)
	}
	if len(history) == 0 {
		return nil, fmt.Errorf("no mmr history found for game type: %s", gameType)
	}

	grouped := groupByPeriod(history, period)

	entries := make([]*TimelineEntry, 0, len(grouped))
	var prev *models.MMRHistoryEntry
	totalChanges := 0
	milestones := 0
	seasonsMap := make(map[int]bool)
	highest := grouped[0].MMR
	lowest := grouped[0].MMR

	for _, point := range grouped {
		isChange := false
		isMilestone := false
		if prev != nil && point.MMR != prev.MMR {
			isChange = true
			totalChanges++
			if point.RankName != prev.RankName {
				isMilestone = true
				milestones++
			}
		}

		entries = append(entries, &TimelineEntry{
			Timestamp:   point.RecordedAt,
			Date:        point.RecordedAt.Format("2006-01-02"),
			MMR:         point.MMR,
			Rank:        formatTimelineRank(point),
			Season:      point.Season,
			IsChange:    isChange,
			IsMilestone: isMilestone,
		})

		seasonsMap[point.Season] = true
		if point.MMR > highest {
			highest = point.MMR
		}
		if point.MMR < lowest {
			lowest = point.MMR
		}
		prev = point
	}

	seasons := make([]int, 0, len(seasonsMap))
	for season := range seasonsMap {
		seasons = append(seasons, season)
	}
	sort.Ints(seasons)

	return &Timeline{
		GameType:       gameType,
		StartDate:      grouped[0].RecordedAt,
		EndDate:        grouped[len(grouped)-1].RecordedAt,
		Entries:        entries,
		TotalChanges:   totalChanges,
		Milestones:     milestones,
		StartMMR:       grouped[0].MMR,
		EndMMR:         grouped[len(grouped)-1].MMR,
		HighestMMR:     highest,
		LowestMMR:      lowest,
		SeasonsCovered: seasons,
	}, nil
}

// groupByPeriod keeps the latest history point per period bucket.
func groupByPeriod(history []*models.MMRHistoryEntry, period TimelinePeriod) []*models.MMRHistoryEntry {
	if period == PeriodAll || len(history) == 0 {
		return history
	}

	grouped := make(map[string]*models.MMRHistoryEntry)
	for _, point := range history {
		var key string
		switch period {
		case PeriodDaily:
			key = point.RecordedAt.Format("2006-01-02")
		case PeriodWeekly:
			year, week := point.RecordedAt.ISOWeek()
			key = fmt.Sprintf("%d-W%02d", year, week)
		case PeriodMonthly:
			key = point.RecordedAt.Format("2006-01")
		default:
			key = point.RecordedAt.Format("2006-01-02")
		}

		if existing, ok := grouped[key]; !ok || point.RecordedAt.After(existing.RecordedAt) {
			grouped[key] = point
		}
	}

	result := make([]*models.MMRHistoryEntry, 0, len(grouped))
	for _, point := range grouped {
		result = append(result, point)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].RecordedAt.Before(result[j].RecordedAt)
	})
	return result
}

func formatTimelineRank(point *models.MMRHistoryEntry) string {
	if point.RankName == "" {
		return "Unranked"
	}
	if point.Division == "" {
		return point.RankName
	}
	return point.RankName + " " + point.Division
}
