package seed

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"github.com/julianstephens/cadence/internal/auth"
	"github.com/julianstephens/cadence/internal/constants"
	"github.com/julianstephens/cadence/internal/models"
	"github.com/julianstephens/cadence/internal/storage"
)

const (
	DemoUsername = "demo"
	DemoEmail    = "demo@example.com"
	DemoPassword = "Demo1234"

	// dailyCompletionRate is the chance a daily habit gets checked off on any
	// given seeded day, so the demo data has realistic gaps.
	dailyCompletionRate = 0.7
)

type sample struct {
	name        string
	periodicity models.Periodicity
}

var samples = []sample{
	{"Brush Teeth", models.PeriodicityDaily},
	{"Exercise", models.PeriodicityDaily},
	{"Read", models.PeriodicityDaily},
	{"Weekly Review", models.PeriodicityWeekly},
	{"Call Family", models.PeriodicityWeekly},
}

// Result summarizes what Run created.
type Result struct {
	Username    string
	Habits      int
	Completions int
}

// Run populates the store with a demo user, five sample habits, and four
// weeks of completion history ending at now. Seeding twice is an error (the
// demo user already exists). The generator is seeded from now so repeated
// runs against fresh stores differ.
func Run(store storage.Provider, now time.Time) (Result, error) {
	if _, err := store.GetUser(DemoUsername); err == nil {
		return Result{}, fmt.Errorf("demo user already exists; seed against a fresh store")
	}

	hash, err := auth.HashPassword(DemoPassword)
	if err != nil {
		return Result{}, err
	}

	start := now.AddDate(0, 0, -7*constants.SeedWeeks)
	user := models.User{
		ID:           uuid.New().String(),
		Username:     DemoUsername,
		Email:        DemoEmail,
		PasswordHash: hash,
		CreatedAt:    start,
	}
	if err := store.CreateUser(user); err != nil {
		return Result{}, err
	}

	habits := make([]models.Habit, 0, len(samples))
	for _, s := range samples {
		h := models.Habit{
			ID:          uuid.New().String(),
			UserID:      user.ID,
			Name:        s.name,
			Periodicity: s.periodicity,
			CreatedAt:   start,
			Active:      true,
		}
		if err := store.AddHabit(h); err != nil {
			return Result{}, err
		}
		habits = append(habits, h)
	}

	rng := rand.New(rand.NewSource(now.UnixNano()))
	completions := 0
	for day := start; !day.After(now); day = day.AddDate(0, 0, 1) {
		for _, h := range habits {
			var due bool
			switch h.Periodicity {
			case models.PeriodicityDaily:
				due = rng.Float64() < dailyCompletionRate
			case models.PeriodicityWeekly:
				due = day.Weekday() == time.Monday
			}
			if !due {
				continue
			}

			ts := time.Date(day.Year(), day.Month(), day.Day(),
				8+rng.Intn(13), rng.Intn(60), 0, 0, day.Location())
			if ts.After(now) {
				continue
			}

			c, err := models.NewCompletion(ts,
				fmt.Sprintf("Completed on %s", day.Format("2006-01-02")),
				constants.MoodMin+4+rng.Intn(constants.MoodMax-constants.MoodMin-3),
				now,
			)
			if err != nil {
				return Result{}, err
			}
			if err := store.AddCompletion(h.ID, c); err != nil {
				return Result{}, err
			}
			completions++
		}
	}

	return Result{Username: DemoUsername, Habits: len(habits), Completions: completions}, nil
}
