package server

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/decred/slog"
	"github.com/google/uuid"

	"github.com/pokermesa/mesa/pkg/poker"
	"github.com/pokermesa/mesa/internal/db"
)

var (
	// ErrUnknownTable is returned when the table id does not exist.
	ErrUnknownTable = errors.New("server: unknown table")

	// ErrInsufficientBalance is returned when a buy-in exceeds the
	// player's bankroll.
	ErrInsufficientBalance = db.ErrInsufficientBalance
)

// Defaults applied by NewTableManager where the config leaves them zero.
const (
	DefaultNumTables       = 10
	DefaultStartingBalance = 1000
)

// ManagerConfig holds configuration for a table manager
type ManagerConfig struct {
	Log slog.Logger
	DB  *db.DB

	// NumTables tables named "Mesa 1".. are created at boot.
	NumTables int
	BigBlind  int64

	// StartingBalance seeds the bankroll of first-seen display names.
	StartingBalance int64

	// Seed makes every table's deck deterministic when non-zero; tables
	// get consecutive seeds so they do not share shuffle sequences.
	Seed int64
}

// TableManager is the explicit registry of active tables. It routes every
// operation to the table addressed by id; the tables themselves serialize
// their own state, so the manager's lock only guards the registry map.
type TableManager struct {
	log slog.Logger
	cfg ManagerConfig
	db  *db.DB

	events *Broadcaster

	mu     sync.RWMutex
	tables map[string]*poker.Table
}

// NewTableManager creates a manager with the configured fixed tables
func NewTableManager(cfg ManagerConfig) *TableManager {
	if cfg.Log == nil {
		cfg.Log = slog.Disabled
	}
	if cfg.NumTables == 0 {
		cfg.NumTables = DefaultNumTables
	}
	if cfg.StartingBalance == 0 {
		cfg.StartingBalance = DefaultStartingBalance
	}

	m := &TableManager{
		log:    cfg.Log,
		cfg:    cfg,
		db:     cfg.DB,
		events: NewBroadcaster(cfg.Log),
		tables: make(map[string]*poker.Table),
	}

	for i := 1; i <= cfg.NumTables; i++ {
		var seed int64
		if cfg.Seed != 0 {
			seed = cfg.Seed + int64(i)
		}
		id := fmt.Sprintf("mesa-%d", i)
		m.tables[id] = poker.NewTable(poker.TableConfig{
			ID:       id,
			Name:     fmt.Sprintf("Mesa %d", i),
			Log:      cfg.Log,
			BigBlind: cfg.BigBlind,
			Seed:     seed,
		})
	}

	m.log.Infof("table manager ready with %d tables", cfg.NumTables)
	return m
}

// CreateTable registers an additional table with a generated id
func (m *TableManager) CreateTable(name string, bigBlind int64) *poker.Table {
	if bigBlind == 0 {
		bigBlind = m.cfg.BigBlind
	}
	tbl := poker.NewTable(poker.TableConfig{
		ID:       uuid.New().String(),
		Name:     name,
		Log:      m.log,
		BigBlind: bigBlind,
	})

	m.mu.Lock()
	m.tables[tbl.ID()] = tbl
	m.mu.Unlock()

	m.log.Infof("created table %s (%s)", tbl.ID(), name)
	return tbl
}

// GetTable returns the table with the given id
func (m *TableManager) GetTable(tableID string) (*poker.Table, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	tbl, ok := m.tables[tableID]
	if !ok {
		return nil, ErrUnknownTable
	}
	return tbl, nil
}

// ListTables returns lobby summaries for every table, ordered by id
func (m *TableManager) ListTables() []poker.TableInfo {
	m.mu.RLock()
	tables := make([]*poker.Table, 0, len(m.tables))
	for _, tbl := range m.tables {
		tables = append(tables, tbl)
	}
	m.mu.RUnlock()

	infos := make([]poker.TableInfo, 0, len(tables))
	for _, tbl := range tables {
		infos = append(infos, tbl.Info())
	}
	sort.Slice(infos, func(i, j int) bool { return infos[i].ID < infos[j].ID })
	return infos
}

// Join buys a player into a table, debiting their bankroll. First-seen
// display names are seeded with the configured starting balance. When a
// hand is running the player is parked as a spectator; seated reports
// which happened.
func (m *TableManager) Join(tableID, displayName string, buyIn int64) (player *poker.Player, seated bool, err error) {
	tbl, err := m.GetTable(tableID)
	if err != nil {
		return nil, false, err
	}

	if buyIn <= 0 {
		return nil, false, poker.ErrNoChips
	}

	if err := m.db.EnsureAccount(displayName, m.cfg.StartingBalance); err != nil {
		return nil, false, fmt.Errorf("ensure account: %w", err)
	}
	if err := m.db.Debit(displayName, buyIn, "buy-in at "+tableID); err != nil {
		return nil, false, err
	}

	player, seated, err = tbl.Join(displayName, buyIn)
	if err != nil {
		// The seat was refused; the buy-in goes back.
		if cerr := m.db.Credit(displayName, buyIn, "buy-in refund at "+tableID); cerr != nil {
			m.log.Errorf("refund for %s at %s failed: %v", displayName, tableID, cerr)
		}
		return nil, false, err
	}

	m.events.Broadcast(tableID, EventPlayersUpdate, tbl.Info())
	return player, seated, nil
}

// Leave removes the player from the table and credits their chips back to
// the bankroll.
func (m *TableManager) Leave(tableID, playerID string) (int64, error) {
	tbl, err := m.GetTable(tableID)
	if err != nil {
		return 0, err
	}

	name, err := tbl.PlayerName(playerID)
	if err != nil {
		return 0, err
	}

	chips, err := tbl.Leave(playerID)
	if err != nil {
		return 0, err
	}

	if chips > 0 {
		if cerr := m.db.Credit(name, chips, "cash-out from "+tableID); cerr != nil {
			m.log.Errorf("cash-out for %s at %s failed: %v", name, tableID, cerr)
		}
	}

	m.events.Broadcast(tableID, EventPlayersUpdate, tbl.Info())
	// A mid-hand departure folds the seat and can conclude the hand.
	m.events.Broadcast(tableID, EventGameStateUpdate, tbl.Snapshot(""))
	return chips, nil
}

// StartHand starts a hand at the table and broadcasts the new state
func (m *TableManager) StartHand(tableID string) error {
	tbl, err := m.GetTable(tableID)
	if err != nil {
		return err
	}
	if err := tbl.StartHand(); err != nil {
		return err
	}

	m.events.Broadcast(tableID, EventGameStarted, tbl.Snapshot(""))
	return nil
}

// SubmitAction applies one betting action. A non-nil HandResult reports
// that this action ended the hand; the result is also broadcast and
// recorded in the hand-history ledger.
func (m *TableManager) SubmitAction(tableID, playerID string, action poker.Action) (*poker.HandResult, error) {
	tbl, err := m.GetTable(tableID)
	if err != nil {
		return nil, err
	}

	result, err := tbl.HandleAction(playerID, action)
	if err != nil {
		return nil, err
	}

	if result != nil {
		if derr := m.db.RecordHand(result.TableID, result.WinnerName, result.Pot, result.Showdown); derr != nil {
			m.log.Errorf("recording hand at %s failed: %v", tableID, derr)
		}
		m.events.Broadcast(tableID, EventRoundEnded, result)
	}
	m.events.Broadcast(tableID, EventGameStateUpdate, tbl.Snapshot(""))
	return result, nil
}

// Snapshot returns the table state as visible to viewerID
func (m *TableManager) Snapshot(tableID, viewerID string) (poker.PublicGameState, error) {
	tbl, err := m.GetTable(tableID)
	if err != nil {
		return poker.PublicGameState{}, err
	}
	return tbl.Snapshot(viewerID), nil
}

// Events returns the broadcaster the HTTP layer attaches subscribers to
func (m *TableManager) Events() *Broadcaster {
	return m.events
}
