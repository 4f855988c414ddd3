// Seeds the configured store with a realistic demo dataset: a handful of
// barbershops across plans and statuses plus a few partnership inquiries.
// Run with STORE_BACKEND=firebase or mongo against a scratch environment;
// it overwrites the businesses and inquiries collections.
package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"barberhub/config"
	"barberhub/database"
	businessRepo "barberhub/database/repository/business"
	inquiryRepo "barberhub/database/repository/inquiry"
	"barberhub/models"
)

func weekdayHours(open, close string, closedDays ...string) map[string]models.DayHours {
	closed := make(map[string]bool, len(closedDays))
	for _, day := range closedDays {
		closed[day] = true
	}
	days := []string{"monday", "tuesday", "wednesday", "thursday", "friday", "saturday", "sunday"}
	out := make(map[string]models.DayHours, len(days))
	for _, day := range days {
		out[day] = models.DayHours{Open: open, Close: close, Closed: closed[day]}
	}
	return out
}

func main() {
	config.LoadConfig()
	st := database.NewStore()
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	// Clear both collections so reruns start from a known state.
	for _, path := range []string{"businesses", "inquiries"} {
		if err := st.Delete(ctx, path); err != nil {
			log.Fatalf("Failed to clear %s: %v", path, err)
		}
	}

	businesses := businessRepo.NewStoreBusinessRepo(st)
	inquiries := inquiryRepo.NewStoreInquiryRepo(st)

	shops := []models.BusinessView{
		{
			Name:             "Fade Factory",
			Address:          "120 Queen St W",
			City:             "Toronto",
			Province:         "Ontario",
			Latitude:         43.6505,
			Longitude:        -79.3876,
			Email:            "hello@fadefactory.example.com",
			Phone:            "416-555-0101",
			Website:          "https://fadefactory.example.com",
			Description:      "Walk-ins welcome, specialists in skin fades.",
			SubscriptionPlan: models.PlanPremium,
			Status:           models.BusinessStatusActive,
			OpeningHours:     weekdayHours("09:00", "19:00", "sunday"),
			Services: []models.ServiceItem{
				{Title: "Skin Fade", Price: 40, Duration: 45},
				{Title: "Beard Trim", Price: 20, Duration: 20},
			},
			Staff: []models.StaffMember{
				{Name: "Alex Rivera", Rating: 4.9, Specialties: []string{"fades", "designs"}},
				{Name: "Sam Chen", Rating: 4.7, Specialties: []string{"beards"}},
			},
		},
		{
			Name:             "Old Town Cuts",
			Address:          "48 Rue Principale",
			City:             "Gatineau",
			Province:         "Quebec",
			Email:            "contact@oldtowncuts.example.com",
			Phone:            "819-555-0144",
			SubscriptionPlan: models.PlanBasic,
			Status:           models.BusinessStatusActive,
			OpeningHours:     weekdayHours("10:00", "18:00", "sunday", "monday"),
			Services: []models.ServiceItem{
				{Title: "Classic Cut", Price: 28, Duration: 30},
			},
		},
		{
			Name:             "Clipper Club",
			City:             "Toronto",
			Province:         "Ontario",
			Email:            "team@clipperclub.example.com",
			SubscriptionPlan: models.PlanTrial,
			Status:           models.BusinessStatusInactive,
			OpeningHours:     weekdayHours("09:00", "18:00"),
		},
	}

	for i := range shops {
		id, err := businesses.Create(ctx, &shops[i])
		if err != nil {
			log.Fatalf("Failed to seed business %q: %v", shops[i].Name, err)
		}
		fmt.Printf("Seeded business %s: %s\n", id, shops[i].Name)
	}

	leads := []models.Inquiry{
		{
			ContactName:  "Jamie Osei",
			BusinessName: "Jamie's Chair",
			Email:        "jamie@example.com",
			Phone:        "647-555-0190",
			Location:     "Hamilton, Ontario",
			Message:      "Two-chair shop looking to take online bookings.",
		},
		{
			ContactName:  "Priya Nair",
			BusinessName: "Shear Genius",
			Email:        "priya@example.com",
			Location:     "Mississauga, Ontario",
			Message:      "Interested in the premium listing.",
		},
	}
	for i := range leads {
		id, err := inquiries.Create(ctx, &leads[i])
		if err != nil {
			log.Fatalf("Failed to seed inquiry from %q: %v", leads[i].ContactName, err)
		}
		fmt.Printf("Seeded inquiry %s: %s\n", id, leads[i].ContactName)
	}

	fmt.Printf("Done. %d businesses, %d inquiries.\n", len(shops), len(leads))
}
