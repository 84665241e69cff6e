package search

// Categories is the fixed category vocabulary of the event catalog.
var Categories = []string{
	"music", "culture", "food", "fitness", "business",
	"entertainment", "social", "sports", "nightlife",
}

// VenueEntity is a curated venue record used for tiered location scoring.
// An explicit venue mention in a query is a near-hard requirement, so entities
// carry a weight that dominates topical text scoring.
type VenueEntity struct {
	Canonical string
	Aliases   []string // lowercase
	Weight    float64
}

// Registry holds the static lookup tables the engine scores against.
// A Registry is built once, never mutated afterwards, and shared by reference;
// concurrent readers need no locking.
type Registry struct {
	// Synonyms maps a primary keyword to its related terms. The mapping is
	// directional: a key forward-expands to all its synonyms, while a term found
	// inside a synonym list reverse-maps to its owning key(s) only. See Expand.
	Synonyms map[string][]string

	// Venues lists the curated venue entities for tier-1 location scoring.
	Venues []VenueEntity

	// ActivityCategories maps a narrow activity keyword to the single category
	// it implies, e.g. "yoga" -> "fitness".
	ActivityCategories map[string]string

	// StopWords holds functional terms (time words, price words, generic
	// articles and event nouns) excluded from every token-driven scoring rule.
	// The preference parsers and hard filters already consume them.
	StopWords map[string]bool

	// PrimaryCategories is the subset of categories eligible for browsing mode.
	PrimaryCategories map[string]bool
}

// DefaultRegistry returns the production lookup tables.
// Tests may construct a trimmed Registry and inject it with WithRegistry.
func DefaultRegistry() *Registry {
	return &Registry{
		Synonyms:           synonymMap,
		Venues:             venueEntities,
		ActivityCategories: activityCategoryMap,
		StopWords:          stopWords,
		PrimaryCategories:  primaryCategories,
	}
}

// synonymMap expands broad keywords into the vocabulary they cover.
//
// Singular/plural pairs ('game'/'games', 'sport'/'sports') each get their own
// key because the one-way expansion never crosses between them.
//
// Generic bridging terms must not appear in two unrelated lists: 'drinks' used
// to sit in both 'food' and 'nightlife', which let "food events" reach 'disco'
// through the chain food -> drinks -> nightlife -> disco. Keep specific terms
// ('wine', 'beer') under food and leave 'drinks' to nightlife.
var synonymMap = map[string][]string{
	"music":   {"concert", "live", "band", "performance", "show", "gig", "festival", "acoustic", "jazz", "rock", "classical", "electronic", "dj", "singer", "musician", "orchestra", "opera", "disco"},
	"yoga":    {"pilates", "meditation", "mindfulness", "wellness", "stretching", "zen", "breathwork", "workout"},
	"game":    {"gaming", "quiz", "trivia", "tournament", "play", "competition", "esports", "puzzle", "challenge", "escape room"},
	"games":   {"gaming", "quiz", "trivia", "board", "cards", "tournament", "competition", "e-sports", "video games", "board games", "pub quiz", "puzzle", "challenge", "escape room"},
	"quiz":    {"trivia", "game", "games", "pub quiz", "brain teaser", "questions", "knowledge", "competition"},
	"food":    {"dining", "restaurant", "cuisine", "meal", "tasting", "cooking", "culinary", "brunch", "dinner", "lunch", "wine", "beer"},
	"fitness": {"workout", "gym", "exercise", "training", "crossfit", "bootcamp", "running", "cycling", "health", "wellness"},
	"art":     {"exhibition", "gallery", "museum", "painting", "sculpture", "photography", "creative", "craft"},
	"theater": {"theatre", "play", "drama", "performance", "stage", "acting", "show"},
	"dance":   {"dancing", "salsa", "ballet", "nightlife", "tango", "hip-hop", "contemporary", "disco", "party"},
	"comedy":  {"standup", "humor", "funny", "comedian", "laugh", "improv"},
	"party":   {"nightlife", "club", "bar", "dancing", "celebration", "social", "disco"},
	"culture": {"cultural", "art", "museum", "exhibition", "theater", "opera", "ballet"},
	"workshop": {"class", "course", "lesson", "training", "seminar", "tutorial"},
	"networking": {"meetup", "social", "connect", "business", "professional"},
	"outdoor":    {"nature", "park", "beach", "hiking", "outside", "fresh air"},
	"kids":       {"children", "family", "youth", "young"},
	"sport":      {"sports", "athletic", "game", "match", "competition", "football", "soccer", "basketball", "tennis", "running", "crossfit"},
	"sports":     {"sport", "athletic", "game", "match", "competition", "football", "soccer", "basketball", "tennis", "running", "crossfit"},
	"nightlife":  {"club", "bar", "party", "dancing", "drinks", "pub", "lounge", "dj", "disco", "cocktails"},
	"social":     {"meetup", "networking", "gathering", "community", "friends", "people", "connect", "dating"},
	"beer":       {"brewery", "pub", "bar", "drinks", "craft beer", "ale", "lager", "brewing"},
	"wine":       {"winery", "tasting", "vineyard", "sommelier", "drinks", "vino"},
	"coffee":     {"café", "espresso", "barista", "coffeehouse", "latte", "cappuccino"},
	"show":       {"performance", "concert", "gig", "live", "theater", "theatre", "play", "drama", "stage", "acting", "musical", "comedy", "standup", "stand-up", "improv", "magic", "illusion", "circus", "cabaret", "opera", "ballet", "symphony", "orchestra"},
	"cheap":      {"affordable", "budget", "inexpensive", "low-cost", "free"},
	"expensive":  {"premium", "luxury", "high-end", "exclusive"},
	"tonight":    {"today", "this evening", "now"},
	"weekend":    {"saturday", "sunday"},
}

// stopWords are consumed by the preference parsers and hard filters. Scoring
// skips them so an event merely mentioning "cheap" cannot outrank an event
// that actually is cheap.
var stopWords = map[string]bool{
	"cheap": true, "affordable": true, "expensive": true, "free": true,
	"price": true, "cost": true, "budget": true,
	"tonight": true, "today": true, "tomorrow": true, "weekend": true,
	"week": true, "saturday": true, "sunday": true, "night": true,
	"day": true, "evening": true, "morning": true,
	"near": true, "close": true, "local": true, "around": true,
	"class": true, "classes": true, "lesson": true, "lessons": true,
	"course": true, "courses": true, "event": true, "events": true,
	"the": true, "a": true, "an": true, "in": true, "at": true, "on": true,
	"with": true, "for": true, "to": true, "and": true, "or": true,
}

// activityCategoryMap maps a specific activity keyword to the category the
// user intends. A query for "yoga" means fitness events whatever the price or
// time modifiers say.
var activityCategoryMap = map[string]string{
	// Fitness activities
	"yoga":       "fitness",
	"pilates":    "fitness",
	"workout":    "fitness",
	"gym":        "fitness",
	"spin":       "fitness",
	"meditation": "fitness",
	"crossfit":   "fitness",
	"bootcamp":   "fitness",
	"running":    "fitness",
	"cycling":    "fitness",
	// Music activities
	"jazz":       "music",
	"rock":       "music",
	"concert":    "music",
	"opera":      "music",
	"symphony":   "music",
	"classical":  "music",
	"electronic": "music",
	// Entertainment activities
	"quiz":        "entertainment",
	"trivia":      "entertainment",
	"game":        "entertainment",
	"magic":       "entertainment",
	"comedy":      "entertainment",
	"standup":     "entertainment",
	"show":        "entertainment",
	"performance": "entertainment",
	// Culture activities
	"painting":   "culture",
	"art":        "culture",
	"exhibition": "culture",
	"museum":     "culture",
	"theater":    "culture",
	"ballet":     "culture",
	// Food activities
	"tasting":  "food",
	"cooking":  "food",
	"wine":     "food",
	"beer":     "food",
	"culinary": "food",
	// Nightlife activities
	"karaoke": "nightlife",
	"disco":   "nightlife",
	"dancing": "nightlife",
	"club":    "nightlife",
	// Sports activities
	"football":   "sports",
	"soccer":     "sports",
	"basketball": "sports",
	"handball":   "sports",
}

// venueEntities covers the venues users name explicitly. Weights sit above
// every text-scoring tier so a venue mention always dominates.
var venueEntities = []VenueEntity{
	{Canonical: "Tivoli Gardens", Aliases: []string{"tivoli", "tivoli gardens", "tivoli copenhagen"}, Weight: 400},
	{Canonical: "Vega", Aliases: []string{"vega", "vega copenhagen", "store vega", "lille vega"}, Weight: 400},
	{Canonical: "KB Hallen", Aliases: []string{"kb hallen", "kb-hallen", "kb hall"}, Weight: 400},
	{Canonical: "Parken Stadium", Aliases: []string{"parken", "parken stadium", "telia parken"}, Weight: 400},
	{Canonical: "Royal Danish Theatre", Aliases: []string{"royal danish theatre", "royal theatre", "det kongelige teater"}, Weight: 400},
	{Canonical: "Copenhagen Opera House", Aliases: []string{"opera house", "operaen", "copenhagen opera"}, Weight: 400},
	{Canonical: "Rust", Aliases: []string{"rust", "rust copenhagen"}, Weight: 400},
	{Canonical: "Pumpehuset", Aliases: []string{"pumpehuset", "pumpe"}, Weight: 400},
	{Canonical: "Loppen", Aliases: []string{"loppen", "loppen christiania"}, Weight: 400},
	{Canonical: "Reffen", Aliases: []string{"reffen", "reffen street food"}, Weight: 400},
}

// primaryCategories trigger browsing mode: a query naming one of these broad
// terms wants the whole category, not title-specific matches.
var primaryCategories = map[string]bool{
	"fitness": true, "music": true, "food": true, "sport": true, "sports": true,
	"culture": true, "art": true, "entertainment": true, "nightlife": true,
	"business": true, "social": true,
}
