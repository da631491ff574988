package export

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/kwpid/HighCard-V2/internal/storage/models"
)

// WriteMatches writes match records to the writer in the given format.
func WriteMatches(w io.Writer, matches []*models.Match, format Format, pretty bool) error {
	switch format {
	case FormatJSON:
		return writeJSON(w, matches, pretty)
	case FormatCSV:
		return writeMatchesCSV(w, matches)
	default:
		return fmt.Errorf("unsupported export format: %s", format)
	}
}

func writeMatchesCSV(w io.Writer, matches []*models.Match) error {
	writer := csv.NewWriter(w)
	defer writer.Flush()

	header := []string{
		"PlayedAt",
		"GameType",
		"Ranked",
		"Result",
		"Team1Score",
		"Team2Score",
		"OpponentRating",
		"MMRBefore",
		"MMRAfter",
		"Season",
	}
	if err := writer.Write(header); err != nil {
		return err
	}

	for _, m := range matches {
		record := []string{
			m.PlayedAt.Format("2006-01-02 15:04:05"),
			m.GameType,
			fmt.Sprintf("%t", m.Ranked),
			matchResult(m),
			fmt.Sprintf("%d", m.Team1Score),
			fmt.Sprintf("%d", m.Team2Score),
			optionalInt(m.OpponentRating),
			optionalInt(m.MMRBefore),
			optionalInt(m.MMRAfter),
			fmt.Sprintf("%d", m.Season),
		}
		if err := writer.Write(record); err != nil {
			return err
		}
	}

	return writer.Error()
}

// WriteMMRHistory writes rating history points to the writer in the given
// format.
func WriteMMRHistory(w io.Writer, entries []*models.MMRHistoryEntry, format Format, pretty bool) error {
	switch format {
	case FormatJSON:
		return writeJSON(w, entries, pretty)
	case FormatCSV:
		return writeMMRHistoryCSV(w, entries)
	default:
		return fmt.Errorf("unsupported export format: %s", format)
	}
}

func writeMMRHistoryCSV(w io.Writer, entries []*models.MMRHistoryEntry) error {
	writer := csv.NewWriter(w)
	defer writer.Flush()

	header := []string{"RecordedAt", "GameType", "MMR", "Rank", "Division", "Season"}
	if err := writer.Write(header); err != nil {
		return err
	}

	for _, e := range entries {
		record := []string{
			e.RecordedAt.Format("2006-01-02 15:04:05"),
			e.GameType,
			fmt.Sprintf("%d", e.MMR),
			e.RankName,
			e.Division,
			fmt.Sprintf("%d", e.Season),
		}
		if err := writer.Write(record); err != nil {
			return err
		}
	}

	return writer.Error()
}

func matchResult(m *models.Match) string {
	switch {
	case m.Tie:
		return "tie"
	case m.Won:
		return "win"
	default:
		return "loss"
	}
}

func optionalInt(v *int) string {
	if v == nil {
		return ""
	}
	return fmt.Sprintf("%d", *v)
}
