package admin

import (
	"fmt"
	"time"

	"pawhub/config"
	"pawhub/models"
	"pawhub/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// analysisWindowMonths is how far back the heuristic scan looks.
const analysisWindowMonths = 3

// RunAnalysis scans providers and users against the configured thresholds and
// files flags for what it finds. A rule that already produced an unresolved
// flag stays quiet until an admin resolves it, so repeated runs do not stack
// duplicates.
func (s *DefaultAdminService) RunAnalysis() (*models.AnalysisReport, error) {
	now := time.Now()
	months := models.MonthsBack(now, analysisWindowMonths)
	from, _, err := models.MonthBounds(months[len(months)-1])
	if err != nil {
		return nil, err
	}
	_, to, err := models.MonthBounds(months[0])
	if err != nil {
		return nil, err
	}

	report := &models.AnalysisReport{RanAt: now}

	if err := s.analyzeProviders(from, to, &report.Providers); err != nil {
		return nil, err
	}
	if err := s.analyzeUsers(from, to, &report.Users); err != nil {
		return nil, err
	}

	utils.GetLogger().Info("Fraud analysis finished",
		zap.Int("providersAnalyzed", report.Providers.Analyzed),
		zap.Int("providersFlagged", report.Providers.Flagged),
		zap.Int("usersAnalyzed", report.Users.Analyzed),
		zap.Int("usersFlagged", report.Users.Flagged))
	return report, nil
}

func (s *DefaultAdminService) analyzeProviders(from, to string, out *models.AnalysisCategoryReport) error {
	cfg := config.AppConfig
	for _, kind := range []models.ProviderKind{models.KindVet, models.KindDaycare, models.KindPetshop} {
		providers, err := s.ProviderRepo.ListByKind(kind)
		if err != nil {
			return err
		}
		for _, p := range providers {
			if p.Approval != models.ApprovalApproved {
				continue
			}
			out.Analyzed++

			bookings, err := s.BookingRepo.ListByProviderBetween(p.ID, from, to)
			if err != nil {
				return err
			}

			var total, cancelled, completed, ghost int
			for _, b := range bookings {
				total++
				switch b.Status {
				case models.BookingCancelled:
					cancelled++
				case models.BookingCompleted:
					completed++
					if b.ProConfirmedAt != nil && b.ClientConfirmedAt == nil {
						ghost++
					}
				}
			}

			flagged := false
			if total >= cfg.AnalysisMinBookingsForRate && cancelled*100 > total*cfg.AnalysisProCancelRatePct {
				note := fmt.Sprintf("%d of %d bookings cancelled in the last %d months", cancelled, total, analysisWindowMonths)
				if err := s.fileFlag(p.UserID, models.FlagProHighCancelRate, note, out); err != nil {
					return err
				}
				flagged = true
			}
			if total >= cfg.AnalysisMinBookingsForRate && completed*100 < total*cfg.AnalysisMinCompletionPct {
				note := fmt.Sprintf("only %d of %d bookings completed in the last %d months", completed, total, analysisWindowMonths)
				if err := s.fileFlag(p.UserID, models.FlagProLowCompletionRate, note, out); err != nil {
					return err
				}
				flagged = true
			}
			if ghost > cfg.AnalysisGhostCompletions {
				note := fmt.Sprintf("%d completions never acknowledged by the client", ghost)
				if err := s.fileFlag(p.UserID, models.FlagProGhostCompletions, note, out); err != nil {
					return err
				}
				flagged = true
			}
			if flagged {
				out.Flagged++
			}
		}
	}
	return nil
}

func (s *DefaultAdminService) analyzeUsers(from, to string, out *models.AnalysisCategoryReport) error {
	cfg := config.AppConfig
	users, _, err := s.UserRepo.List(models.UserListFilter{Role: models.RoleUser})
	if err != nil {
		return err
	}

	for _, usr := range users {
		out.Analyzed++
		flagged := false

		if usr.NoShowCount >= cfg.AnalysisUserNoShowCount {
			note := fmt.Sprintf("%d recorded no-shows", usr.NoShowCount)
			if err := s.fileFlag(usr.ID, models.FlagUserNoShowRepeat, note, out); err != nil {
				return err
			}
			flagged = true
		}

		bookings, err := s.BookingRepo.ListByClientBetween(usr.ID, from, to)
		if err != nil {
			return err
		}
		var total, cancelled int
		for _, b := range bookings {
			total++
			if b.Status == models.BookingCancelled {
				cancelled++
			}
		}
		if total >= cfg.AnalysisMinBookingsForRate && cancelled*100 > total*cfg.AnalysisUserCancelRatePct {
			note := fmt.Sprintf("%d of %d bookings cancelled in the last %d months", cancelled, total, analysisWindowMonths)
			if err := s.fileFlag(usr.ID, models.FlagUserHighCancelRate, note, out); err != nil {
				return err
			}
			flagged = true
		}
		if flagged {
			out.Flagged++
		}
	}
	return nil
}

// fileFlag creates a flag unless the account already carries an unresolved
// one of the same type.
func (s *DefaultAdminService) fileFlag(userID, flagType, note string, out *models.AnalysisCategoryReport) error {
	exists, err := s.FlagRepo.ExistsUnresolved(userID, flagType)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}

	f := &models.AdminFlag{
		ID:       uuid.New().String(),
		UserID:   userID,
		Type:     flagType,
		Category: models.FlagCategoryOf(flagType),
		Note:     note,
	}
	if err := s.FlagRepo.Create(f); err != nil {
		return err
	}
	out.Flags = append(out.Flags, *f)
	return nil
}
