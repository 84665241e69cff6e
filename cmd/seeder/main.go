package main

import (
	"bytes"
	"context"
	"encoding/json"
	"flag"
	"log/slog"
	"os"
	"time"

	eventscout "github.com/spontanique/eventscout"
	"github.com/spontanique/eventscout/ai/mock"
	"github.com/spontanique/eventscout/ingestion"
)

// seedEvent is a FeedEvent with the date expressed as a day offset from now,
// so the seeded catalog always lies in the searchable future.
type seedEvent struct {
	key         string
	title       string
	description string
	category    string
	venue       string
	city        string
	price       float64
	daysAhead   int
	hour        int
	ticketsLeft int
}

var seedEvents = []seedEvent{
	{"seed-jazz-night-vega", "Jazz Night at Vega", "An evening of live jazz with the Copenhagen quartet.", "music", "Vega", "Copenhagen", 150, 0, 20, 80},
	{"seed-silent-disco-park", "Silent Disco in the Park", "Three channels, three DJs, headphones at the gate.", "nightlife", "Fælledparken", "Copenhagen", 50, 0, 21, 200},
	{"seed-morning-yoga", "Morning Yoga in the Park", "Outdoor vinyasa flow for all levels. Mats provided.", "fitness", "Kongens Have", "Copenhagen", 100, 1, 8, 25},
	{"seed-rooftop-yoga", "Exclusive Rooftop Yoga Retreat", "Sunset session with skyline views and tea afterwards.", "fitness", "Illum Rooftop", "Copenhagen", 500, 1, 19, 12},
	{"seed-board-game-cafe", "Board Game Café Night", "Hundreds of games on the shelves and hosts to teach them.", "entertainment", "Bastard Café", "Copenhagen", 0, 5, 18, 60},
	{"seed-sunday-jazz-brunch", "Sunday Jazz Brunch", "Brunch buffet with a live trio playing standards.", "food", "Huset", "Copenhagen", 120, 6, 11, 40},
	{"seed-comedy-open-mic", "Comedy Open Mic", "New material night, English and Danish sets.", "entertainment", "Huset", "Copenhagen", 60, 2, 20, 90},
	{"seed-craft-beer-tasting", "Craft Beer Tasting", "Eight local brews with snacks to match.", "food", "Mikkeller Bar", "Copenhagen", 250, 3, 18, 30},
	{"seed-opera-gala", "Opera Gala Evening", "Highlights from the season with full orchestra.", "culture", "Operaen", "Copenhagen", 650, 9, 19, 150},
	{"seed-harbor-run", "Harbor 10K Run", "Timed run along the harbor front, medals for all finishers.", "sports", "Islands Brygge", "Copenhagen", 180, 12, 10, 500},
	{"seed-startup-pitch-night", "Startup Pitch Night", "Six founders, five minutes each, investor panel Q&A.", "business", "Talent Garden", "Copenhagen", 0, 4, 17, 120},
	{"seed-salsa-social", "Salsa Social", "Beginner class at eight, open floor from nine.", "social", "Kulturhuset", "Copenhagen", 80, 5, 20, 70},
}

var seedFileName = flag.String("src", "", "JSON feed file of seed data")
var dbPath = flag.String("db", "./events_db", "path to BadgerDB database directory")

func init() {
	handler := slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})
	slog.SetDefault(slog.New(handler))
	flag.Parse()
}

// builtinFeed renders the seed fixtures as a JSON feed.
func builtinFeed() ([]byte, error) {
	now := time.Now()
	feed := make([]ingestion.FeedEvent, len(seedEvents))
	for i, s := range seedEvents {
		day := now.AddDate(0, 0, s.daysAhead)
		feed[i] = ingestion.FeedEvent{
			EventKey:    s.key,
			Title:       s.title,
			Description: s.description,
			Category:    s.category,
			Venue:       s.venue,
			City:        s.city,
			Price:       s.price,
			EventDate:   time.Date(day.Year(), day.Month(), day.Day(), s.hour, 0, 0, 0, time.Local),
			TicketsLeft: s.ticketsLeft,
		}
	}
	return json.Marshal(feed)
}

func main() {
	catalog, err := eventscout.NewCatalog(*dbPath, eventscout.WithAIProvider(mock.NewMockProvider()))
	if err != nil {
		panic(err)
	}
	defer catalog.Close()

	pipeline, err := catalog.NewImportPipeline()
	if err != nil {
		panic(err)
	}
	defer pipeline.Release()

	ctx := context.Background()

	var report *ingestion.Report
	if *seedFileName != "" {
		f, err := os.Open(*seedFileName)
		if err != nil {
			panic(err)
		}
		defer f.Close()
		report, err = pipeline.Import(ctx, f, "seed")
		if err != nil {
			panic(err)
		}
	} else {
		data, err := builtinFeed()
		if err != nil {
			panic(err)
		}
		report, err = pipeline.Import(ctx, bytes.NewReader(data), "seed")
		if err != nil {
			panic(err)
		}
	}

	slog.Info("seeded catalog", "imported", report.Imported, "rejected", report.Rejected, "failed", report.Failed)
}
