// Package fixture implements a providers.Adapter backed entirely by a
// local static HTML document, with no network calls. It exists so the
// simulation core can be exercised end to end — in the CLI demo and in
// tests — without depending on a live fantasy platform.
package fixture

import (
	"context"
	"embed"
	"strconv"
	"strings"

	"golang.org/x/net/html"

	"github.com/aharper42/fantasyplayoffs/models"
	"github.com/aharper42/fantasyplayoffs/providers"
)

//go:embed testdata/*.html
var testdataFS embed.FS

// Adapter reads a league's standings, schedule, and settings from a single
// HTML document, identified by leagueID as a path under testdata/. The
// document is expected to carry three tables, picked out by id attribute:
// "standings", "schedule", and "settings".
type Adapter struct{}

// New returns a fixture Adapter.
func New() *Adapter {
	return &Adapter{}
}

func (a *Adapter) Name() string { return "fixture" }

// season is accepted for interface conformance but unused: a fixture file
// holds one static season's data, so there's nothing to select between.
func (a *Adapter) ValidateLeague(ctx context.Context, cred providers.Credential, leagueID, season string) error {
	_, err := a.parse(leagueID)
	if err != nil {
		return providers.NewError(a.Name(), leagueID, providers.ErrorKindNotFound, "league fixture not found", err)
	}
	return nil
}

func (a *Adapter) FetchStandings(ctx context.Context, cred providers.Credential, leagueID, season string) (map[int]models.Team, map[int]string, error) {
	doc, err := a.parse(leagueID)
	if err != nil {
		return nil, nil, providers.NewError(a.Name(), leagueID, providers.ErrorKindNotFound, "league fixture not found", err)
	}

	table := findByID(doc, "standings")
	if table == nil {
		return nil, nil, providers.NewError(a.Name(), leagueID, providers.ErrorKindTransport, "fixture missing standings table", nil)
	}

	teams := make(map[int]models.Team)
	divisionNames := make(map[int]string)

	for _, row := range tableRows(table) {
		cells := rowCells(row)
		if len(cells) < 7 {
			continue
		}
		id, _ := strconv.Atoi(cells[0])
		divisionID, _ := strconv.Atoi(cells[2])
		wins, _ := strconv.Atoi(cells[3])
		losses, _ := strconv.Atoi(cells[4])
		ties, _ := strconv.Atoi(cells[5])
		divWins, divLosses, divTies := parseDivRecord(cells[6])

		teams[id] = models.Team{
			ID:         id,
			Name:       cells[1],
			DivisionID: divisionID,
			Wins:       wins,
			Losses:     losses,
			Ties:       ties,
			DivWins:    divWins,
			DivLosses:  divLosses,
			DivTies:    divTies,
		}
		if len(cells) > 7 && cells[7] != "" {
			divisionNames[divisionID] = cells[7]
		}
	}

	return teams, divisionNames, nil
}

func (a *Adapter) FetchSchedule(ctx context.Context, cred providers.Credential, leagueID, season string) ([]models.Matchup, error) {
	doc, err := a.parse(leagueID)
	if err != nil {
		return nil, providers.NewError(a.Name(), leagueID, providers.ErrorKindNotFound, "league fixture not found", err)
	}

	table := findByID(doc, "schedule")
	if table == nil {
		return nil, providers.NewError(a.Name(), leagueID, providers.ErrorKindTransport, "fixture missing schedule table", nil)
	}

	var matchups []models.Matchup
	for _, row := range tableRows(table) {
		cells := rowCells(row)
		if len(cells) < 4 {
			continue
		}
		week, _ := strconv.Atoi(cells[0])
		homeID, _ := strconv.Atoi(cells[1])
		awayID, _ := strconv.Atoi(cells[2])
		isDivisionGame := cells[3] == "true"
		matchups = append(matchups, models.Matchup{
			HomeID:         homeID,
			AwayID:         awayID,
			Week:           week,
			IsDivisionGame: isDivisionGame,
		})
	}
	return matchups, nil
}

func (a *Adapter) FetchHeadToHead(ctx context.Context, cred providers.Credential, leagueID, season string) (models.H2H, error) {
	doc, err := a.parse(leagueID)
	if err != nil {
		return nil, providers.NewError(a.Name(), leagueID, providers.ErrorKindNotFound, "league fixture not found", err)
	}

	h2h := models.NewH2H()
	table := findByID(doc, "h2h")
	if table == nil {
		return h2h, nil
	}
	for _, row := range tableRows(table) {
		cells := rowCells(row)
		if len(cells) < 3 {
			continue
		}
		winnerID, _ := strconv.Atoi(cells[0])
		loserID, _ := strconv.Atoi(cells[1])
		games, _ := strconv.Atoi(cells[2])
		for i := 0; i < games; i++ {
			h2h.RecordWin(winnerID, loserID)
		}
	}
	return h2h, nil
}

func (a *Adapter) FetchLeagueSettings(ctx context.Context, cred providers.Credential, leagueID, season string) (models.LeagueSettings, error) {
	doc, err := a.parse(leagueID)
	if err != nil {
		return models.LeagueSettings{}, providers.NewError(a.Name(), leagueID, providers.ErrorKindNotFound, "league fixture not found", err)
	}

	settings := models.LeagueSettings{PlayoffSpots: 6, NumDivisions: 2, TotalWeeks: 18}
	table := findByID(doc, "settings")
	if table == nil {
		return settings, nil
	}
	for _, row := range tableRows(table) {
		cells := rowCells(row)
		if len(cells) < 2 {
			continue
		}
		key, value := cells[0], cells[1]
		switch key {
		case "league_name":
			settings.LeagueName = value
		case "playoff_spots":
			settings.PlayoffSpots, _ = strconv.Atoi(value)
		case "num_divisions":
			settings.NumDivisions, _ = strconv.Atoi(value)
		case "total_weeks":
			settings.TotalWeeks, _ = strconv.Atoi(value)
		}
	}
	return settings, nil
}

func (a *Adapter) parse(leagueID string) (*html.Node, error) {
	data, err := testdataFS.ReadFile("testdata/" + leagueID + ".html")
	if err != nil {
		return nil, err
	}
	return html.Parse(strings.NewReader(string(data)))
}

// findByID walks the tree for the first element carrying the given id
// attribute.
func findByID(n *html.Node, id string) *html.Node {
	if n.Type == html.ElementNode {
		for _, attr := range n.Attr {
			if attr.Key == "id" && attr.Val == id {
				return n
			}
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findByID(c, id); found != nil {
			return found
		}
	}
	return nil
}

// tableRows returns every <tr> under table that isn't a header row (i.e.
// contains <td> rather than exclusively <th>).
func tableRows(table *html.Node) []*html.Node {
	var rows []*html.Node
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == "tr" {
			if hasCellType(n, "td") {
				rows = append(rows, n)
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(table)
	return rows
}

func hasCellType(row *html.Node, tag string) bool {
	for c := row.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode && c.Data == tag {
			return true
		}
	}
	return false
}

// rowCells returns the trimmed text content of each <td> in row, in order.
func rowCells(row *html.Node) []string {
	var cells []string
	for c := row.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode && c.Data == "td" {
			cells = append(cells, strings.TrimSpace(cellText(c)))
		}
	}
	return cells
}

func cellText(n *html.Node) string {
	var sb strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			sb.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return sb.String()
}

// parseDivRecord parses a "W-L-T" string into its three components.
func parseDivRecord(s string) (wins, losses, ties int) {
	parts := strings.Split(s, "-")
	if len(parts) != 3 {
		return 0, 0, 0
	}
	wins, _ = strconv.Atoi(parts[0])
	losses, _ = strconv.Atoi(parts[1])
	ties, _ = strconv.Atoi(parts[2])
	return wins, losses, ties
}
