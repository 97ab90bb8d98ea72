package games

import "context"

// Game is a single catalogue entry
type Game struct {
	ID          int    `json:"id"`
	Title       string `json:"title"`
	Genre       string `json:"genre"`
	Platform    string `json:"platform"`
	ReleaseYear int    `json:"release_year"`
}

// Provider is the fallback data source consulted on a cache miss
type Provider interface {
	FetchGames(ctx context.Context) ([]Game, error)
}

// StaticProvider returns a fixed catalogue
type StaticProvider struct{}

// Ensure StaticProvider implements Provider
var _ Provider = StaticProvider{}

func NewStaticProvider() StaticProvider {
	return StaticProvider{}
}

// FetchGames returns a fresh copy of the catalogue on every call
func (StaticProvider) FetchGames(ctx context.Context) ([]Game, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return []Game{
		{ID: 1, Title: "The Witcher 3: Wild Hunt", Genre: "Action RPG", Platform: "PlayStation 4", ReleaseYear: 2015},
		{ID: 2, Title: "Red Dead Redemption 2", Genre: "Action Adventure", Platform: "Xbox One", ReleaseYear: 2018},
		{ID: 3, Title: "The Legend of Zelda: Breath of the Wild", Genre: "Action-Adventure", Platform: "Nintendo Switch", ReleaseYear: 2017},
		{ID: 4, Title: "Cyberpunk 2077", Genre: "Action RPG", Platform: "PlayStation 5", ReleaseYear: 2020},
		{ID: 5, Title: "Grand Theft Auto V", Genre: "Action-Adventure", Platform: "PC", ReleaseYear: 2013},
	}, nil
}
