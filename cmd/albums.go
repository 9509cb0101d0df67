package cmd

import (
	"os"
	"strconv"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/search5/openband/internal/band"
	"github.com/search5/openband/internal/cli"
)

var (
	albumsAll bool
	photosAll bool
)

// albumsCmd lists a band's photo albums.
var albumsCmd = &cobra.Command{
	Use:   "albums BAND_KEY",
	Short: "List a band's photo albums",
	Long: `List the photo albums of a band.

Examples:
  openband albums BAND_KEY             # First page of albums
  openband albums BAND_KEY --all       # Every page`,
	Args: cobra.ExactArgs(1),
	RunE: runAlbums,
}

// photosCmd lists photos, optionally scoped to one album.
var photosCmd = &cobra.Command{
	Use:   "photos BAND_KEY [ALBUM_KEY]",
	Short: "List a band's photos",
	Long: `List photos of a band, optionally scoped to one album.

Without an album key, photos across all albums are listed.

Examples:
  openband photos BAND_KEY             # Photos across all albums
  openband photos BAND_KEY ALBUM_KEY   # Photos in one album`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runPhotos,
}

func init() {
	albumsCmd.Flags().BoolVar(&albumsAll, "all", false, "follow pagination until the listing is exhausted")
	photosCmd.Flags().BoolVar(&photosAll, "all", false, "follow pagination until the listing is exhausted")

	rootCmd.AddCommand(albumsCmd)
	rootCmd.AddCommand(photosCmd)
}

func runAlbums(cmd *cobra.Command, args []string) error {
	client, err := buildClient()
	if err != nil {
		return err
	}
	b := &band.Band{Key: args[0]}

	var albums []*band.Album
	var cursor *band.Paging
	for {
		page, next, err := client.Albums(cmd.Context(), b, cursor)
		if err != nil {
			return err
		}
		albums = append(albums, page...)
		if !albumsAll || !next.HasNext() {
			break
		}
		cursor = next
	}

	if len(albums) == 0 {
		cli.EmptyMessage("No albums found")
		return nil
	}

	t := cli.NewTable(os.Stdout)
	t.AppendHeader(table.Row{"ALBUM KEY", "NAME", "PHOTOS", "OWNER"})
	for _, a := range albums {
		t.AppendRow(table.Row{a.AlbumKey, a.Name, strconv.Itoa(a.PhotoCount), a.Owner.Name})
	}
	t.Render()
	return nil
}

func runPhotos(cmd *cobra.Command, args []string) error {
	client, err := buildClient()
	if err != nil {
		return err
	}
	b := &band.Band{Key: args[0]}

	albumKey := ""
	if len(args) == 2 {
		albumKey = args[1]
	}

	var photos []*band.Photo
	var cursor *band.Paging
	for {
		page, next, err := client.Photos(cmd.Context(), b, albumKey, cursor)
		if err != nil {
			return err
		}
		photos = append(photos, page...)
		if !photosAll || !next.HasNext() {
			break
		}
		cursor = next
	}

	if len(photos) == 0 {
		cli.EmptyMessage("No photos found")
		return nil
	}

	t := cli.NewTable(os.Stdout)
	t.AppendHeader(table.Row{"PHOTO KEY", "AUTHOR", "CREATED", "SIZE", "URL"})
	for _, p := range photos {
		t.AppendRow(table.Row{
			p.PhotoKey,
			p.Author.Name,
			cli.FormatTime(p.CreatedAt),
			strconv.Itoa(p.Width) + "x" + strconv.Itoa(p.Height),
			p.URL,
		})
	}
	t.Render()
	return nil
}
