package main

import (
	"context"
	"fmt"

	"github.com/desertthunder/trek/internal/models"
	"github.com/desertthunder/trek/internal/repositories"
	"github.com/urfave/cli/v3"
)

// DBBootstrap creates the base model tables, the create_all equivalent for
// the demo domain.
func (r *Runner) DBBootstrap(ctx context.Context, cmd *cli.Command) error {
	config := r.loadConfig(cmd)

	r.logger.Info("initializing database", "path", config.Database.Path)

	db, err := r.openDB(config)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := repositories.Bootstrap(db); err != nil {
		return fmt.Errorf("bootstrap failed: %w", err)
	}

	r.writePlain("✓ Created base tables in %s\n", config.Database.Path)
	return nil
}

// DBSeed inserts a few example artists, plus songs when the songs table
// exists (it arrives with the walkthrough's first revision).
func (r *Runner) DBSeed(ctx context.Context, cmd *cli.Command) error {
	config := r.loadConfig(cmd)

	db, err := r.openDB(config)
	if err != nil {
		return err
	}
	defer db.Close()

	artists := repositories.NewArtistRepository(db)

	seedArtists := []*models.Artist{
		models.NewArtist("Prince", "funk", 57, "Minneapolis"),
		models.NewArtist("Nina Simone", "jazz", 70, "Tryon"),
		models.NewArtist("Thom Yorke", "rock", 56, "Wellingborough"),
	}

	for _, artist := range seedArtists {
		if err := artists.Create(artist); err != nil {
			return fmt.Errorf("failed to seed artist %s: %w", artist.Name(), err)
		}
		r.logger.Info("seeded artist", "name", artist.Name(), "id", artist.ID())
	}

	songs := repositories.NewSongRepository(db)
	seeded := 0
	for i, song := range []*models.Song{
		models.NewSong(seedArtists[0].ID(), "Purple Rain", 520),
		models.NewSong(seedArtists[1].ID(), "Feeling Good", 178),
		models.NewSong(seedArtists[2].ID(), "Hearing Damage", 303),
	} {
		if err := songs.Create(song); err != nil {
			if i == 0 {
				r.logger.Warn("skipping song seed, songs table not migrated yet", "error", err)
				break
			}
			return fmt.Errorf("failed to seed song %s: %w", song.Name(), err)
		}
		seeded++
	}

	r.writePlain("✓ Seeded %d artist(s) and %d song(s)\n", len(seedArtists), seeded)
	return nil
}

// DBArtists lists artists, optionally filtered by genre.
func (r *Runner) DBArtists(ctx context.Context, cmd *cli.Command) error {
	config := r.loadConfig(cmd)

	db, err := r.openDB(config)
	if err != nil {
		return err
	}
	defer db.Close()

	repo := repositories.NewArtistRepository(db)
	artists, err := repo.List(map[string]any{"genre": cmd.String("genre")})
	if err != nil {
		return fmt.Errorf("failed to list artists: %w", err)
	}

	if cmd.Bool("json") {
		type artistPayload struct {
			ID       string `json:"id"`
			Name     string `json:"name"`
			Genre    string `json:"genre,omitempty"`
			Age      int    `json:"age"`
			Hometown string `json:"hometown,omitempty"`
		}
		payload := make([]artistPayload, 0, len(artists))
		for _, artist := range artists {
			payload = append(payload, artistPayload{
				ID:       artist.ID(),
				Name:     artist.Name(),
				Genre:    artist.Genre(),
				Age:      artist.Age(),
				Hometown: artist.Hometown(),
			})
		}
		return r.writeJSON(payload, true)
	}

	if len(artists) == 0 {
		return r.writePlain("No artists found\n")
	}

	for _, artist := range artists {
		r.writePlain("%s  %s (%s, %d, %s)\n", artist.ID(), artist.Name(), artist.Genre(), artist.Age(), artist.Hometown())
	}
	return nil
}

// DBSongs lists songs, optionally filtered by artist.
func (r *Runner) DBSongs(ctx context.Context, cmd *cli.Command) error {
	config := r.loadConfig(cmd)

	db, err := r.openDB(config)
	if err != nil {
		return err
	}
	defer db.Close()

	repo := repositories.NewSongRepository(db)
	songs, err := repo.List(map[string]any{"artist_id": cmd.String("artist-id")})
	if err != nil {
		return fmt.Errorf("failed to list songs (has the songs revision been applied?): %w", err)
	}

	if cmd.Bool("json") {
		type songPayload struct {
			ID       string `json:"id"`
			ArtistID string `json:"artist_id"`
			Name     string `json:"name"`
			Length   int    `json:"length"`
		}
		payload := make([]songPayload, 0, len(songs))
		for _, song := range songs {
			payload = append(payload, songPayload{
				ID:       song.ID(),
				ArtistID: song.ArtistID(),
				Name:     song.Name(),
				Length:   song.Length(),
			})
		}
		return r.writeJSON(payload, true)
	}

	if len(songs) == 0 {
		return r.writePlain("No songs found\n")
	}

	for _, song := range songs {
		r.writePlain("%s  %s (%d:%02d)\n", song.ID(), song.Name(), song.Length()/60, song.Length()%60)
	}
	return nil
}
