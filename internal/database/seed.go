package database

import (
	"context"
	"database/sql"

	"dealscope/internal/catalog"
	"dealscope/internal/database/repository"
)

// SeedDeals loads the starter dataset of publicly reported data-licensing
// agreements into an empty database. It is idempotent and safe to run on
// every startup.
func SeedDeals(ctx context.Context, db *sql.DB) error {
	repo := repository.NewDealRepo(db)
	var count int
	if err := db.QueryRowContext(ctx, `SELECT COUNT(*) FROM deals`).Scan(&count); err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	for _, d := range starterDeals() {
		if _, err := repo.Insert(ctx, d); err != nil {
			return err
		}
	}
	return nil
}

func millions(v float64) *int64 {
	n := int64(v * 1_000_000)
	return &n
}

func str(s string) *string { return &s }

// starterDeals is the reported-deal dataset shipped with the app. Values
// are as reported in press coverage; "Undisclosed" rows carry no bounds.
func starterDeals() []catalog.Deal {
	return []catalog.Deal{
		{Receiver: "OpenAI", Aggregator: "Associated Press", Year: 2023, Type: "News", ValueRaw: "Undisclosed", Codes: []string{"TR", "AR"}},
		{Receiver: "OpenAI", Aggregator: "Shutterstock", Year: 2023, Type: "Images", ValueRaw: "Undisclosed", Codes: []string{"TR"}},
		{Receiver: "Meta", Aggregator: "Shutterstock", Year: 2023, Type: "Images", ValueRaw: "Undisclosed", Codes: []string{"TR"}},
		{Receiver: "Apple", Aggregator: "Shutterstock", Year: 2023, Type: "Images", ValueRaw: "$25m-$50m", ValueMin: millions(25), ValueMax: millions(50), Codes: []string{"TR"}},
		{Receiver: "Nvidia", Aggregator: "Getty Images", Year: 2023, Type: "Images", ValueRaw: "Undisclosed", Codes: []string{"TR"}},
		{Receiver: "OpenAI", Aggregator: "Axel Springer", Year: 2023, Type: "News", ValueRaw: "Tens of millions", ValueMin: millions(25), ValueMax: millions(50), ValueUnit: str("over 3 years"), Codes: []string{"TR", "DS"}},
		{Receiver: "Google", Aggregator: "Reddit", Year: 2024, Type: "UGC", ValueRaw: "$60m per year", ValueMin: millions(60), ValueMax: millions(60), ValueUnit: str("per year"), Codes: []string{"TR", "API"}},
		{Receiver: "OpenAI", Aggregator: "Reddit", Year: 2024, Type: "UGC", ValueRaw: "Undisclosed", Codes: []string{"TR", "API"}},
		{Receiver: "OpenAI", Aggregator: "Financial Times", Year: 2024, Type: "News", ValueRaw: "Undisclosed", Codes: []string{"TR", "DS"}},
		{Receiver: "OpenAI", Aggregator: "Le Monde", Year: 2024, Type: "News", ValueRaw: "Undisclosed", Codes: []string{"TR", "DS"}},
		{Receiver: "OpenAI", Aggregator: "News Corp", Year: 2024, Type: "News", ValueRaw: "$250m over 5 years", ValueMin: millions(250), ValueMax: millions(250), ValueUnit: str("over 5 years"), Codes: []string{"TR", "DS", "AR"}},
		{Receiver: "OpenAI", Aggregator: "Dotdash Meredith", Year: 2024, Type: "News", ValueRaw: "$16m per year", ValueMin: millions(16), ValueMax: millions(16), ValueUnit: str("per year"), Codes: []string{"TR", "DS"}},
		{Receiver: "OpenAI", Aggregator: "Stack Overflow", Year: 2024, Type: "UGC", ValueRaw: "Undisclosed", Codes: []string{"TR", "API"}},
		{Receiver: "Google", Aggregator: "Stack Overflow", Year: 2024, Type: "UGC", ValueRaw: "Undisclosed", Codes: []string{"TR", "API"}},
		{Receiver: "Microsoft", Aggregator: "Informa", Year: 2024, Type: "Academic", ValueRaw: "$10m+", ValueMin: millions(10), Codes: []string{"TR"}},
		{Receiver: "Microsoft", Aggregator: "Taylor & Francis", Year: 2024, Type: "Academic", ValueRaw: "$10m", ValueMin: millions(10), ValueMax: millions(10), Codes: []string{"TR"}},
		{Receiver: "Undisclosed Tech Company", Aggregator: "Wiley", Year: 2024, Type: "Academic", ValueRaw: "$23m", ValueMin: millions(23), ValueMax: millions(23), Codes: []string{"TR"}},
		{Receiver: "Amazon", Aggregator: "New York Times", Year: 2025, Type: "News", ValueRaw: "$20m-$25m per year", ValueMin: millions(20), ValueMax: millions(25), ValueUnit: str("per year"), Codes: []string{"TR", "DS"}},
	}
}
