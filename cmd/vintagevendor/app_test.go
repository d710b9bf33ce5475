package main

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hammamikhairi/vintagevendor/internal/conversation"
	"github.com/hammamikhairi/vintagevendor/internal/domain"
	"github.com/hammamikhairi/vintagevendor/internal/engine"
	"github.com/hammamikhairi/vintagevendor/internal/logger"
	"github.com/hammamikhairi/vintagevendor/internal/recipe"
	"github.com/hammamikhairi/vintagevendor/internal/storage"
)

type recorder struct {
	lines []string
}

func (r *recorder) add(kind, text string) { r.lines = append(r.lines, kind+": "+text) }

func (r *recorder) PrintChat(text string)   { r.add("chat", text) }
func (r *recorder) PrintHeader(text string) { r.add("header", text) }
func (r *recorder) PrintLine(text string)   { r.add("line", text) }
func (r *recorder) PrintHint(text string)   { r.add("hint", text) }
func (r *recorder) PrintUrgent(text string) { r.add("urgent", text) }
func (r *recorder) PrintBlock(text string)  { r.add("block", text) }

func (r *recorder) all() string { return strings.Join(r.lines, "\n") }

func newTestApp(t *testing.T) (*cliApp, *recorder, *storage.MemoryStore) {
	t.Helper()
	log := logger.New(logger.LevelOff, nil)
	catalog := recipe.NewCatalog(log)
	store := storage.NewMemoryStore(log)
	eng := engine.New(catalog, store, log,
		engine.WithClock(domain.NewFakeClock(time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC))),
		engine.WithSeed(3),
	)
	rec := &recorder{}
	app := &cliApp{
		engine:   eng,
		catalog:  catalog,
		menu:     catalog,
		store:    store,
		parser:   conversation.NewKeywordParser(log),
		notifier: conversation.NewCLINotifier(log, func(format string, a ...interface{}) { rec.add("notify", fmt.Sprintf(format, a...)) }),
		log:      log,
		out:      rec,
	}
	return app, rec, store
}

func (a *cliApp) exec(t *testing.T, line string) bool {
	t.Helper()
	cmd, err := a.parser.Parse(context.Background(), line)
	require.NoError(t, err)
	return a.handle(context.Background(), cmd)
}

func TestAppRound(t *testing.T) {
	app, rec, _ := newTestApp(t)

	app.exec(t, "start")
	app.exec(t, "spawn")
	app.exec(t, "accept")
	require.True(t, app.engine.Snapshot().Accepted)

	head, ok := app.engine.Snapshot().Head()
	require.True(t, ok)
	var ids []string
	for _, it := range head.Order.Items {
		for _, ing := range it.Ingredients {
			ids = append(ids, ing.ID)
		}
	}
	app.exec(t, "serve "+strings.Join(ids, ","))

	snap := app.engine.Snapshot()
	assert.Empty(t, snap.Customers, "correct serve is finalized")
	assert.Equal(t, head.Order.TotalPrice, snap.Progress.Coins)
	assert.Contains(t, rec.all(), "Chuẩn vị!")

	app.exec(t, "end")
	assert.Equal(t, domain.StateGameOver, app.engine.Snapshot().State)
	assert.Contains(t, rec.all(), "notify: ")
}

func TestAppWrongServeNamesTheDish(t *testing.T) {
	app, rec, _ := newTestApp(t)
	app.exec(t, "start")
	app.exec(t, "spawn")

	head, _ := app.engine.Snapshot().Head()
	other := "soda_chai"
	if head.Order.FirstItemID() == other {
		other = "che"
	}
	def, ok := app.catalog.Lookup(other)
	require.True(t, ok)

	app.exec(t, "serve "+strings.Join(def.IngredientIDs(), " "))
	assert.Contains(t, rec.all(), "Sai món")
	assert.Contains(t, rec.all(), def.Name)
}

func TestAppRefusesStartWithoutEnergy(t *testing.T) {
	app, rec, _ := newTestApp(t)
	app.engine.RefreshEnergy()
	app.engine.ConsumeEnergy(100)

	app.exec(t, "start")
	assert.Contains(t, rec.all(), "Hết năng lượng")

	app.exec(t, "reward energy")
	app.exec(t, "start")
	assert.Equal(t, domain.StatePlaying, app.engine.Snapshot().State)
}

func TestAppHintDefaultsToHead(t *testing.T) {
	app, rec, _ := newTestApp(t)
	app.exec(t, "hint")
	assert.Contains(t, rec.all(), "Gợi ý món nào")

	app.exec(t, "start")
	app.exec(t, "spawn")
	app.exec(t, "hint")
	assert.Contains(t, rec.all(), "Gợi ý: ")
}

func TestAppDifficultyAndUnknown(t *testing.T) {
	app, rec, _ := newTestApp(t)

	app.exec(t, "difficulty brutal")
	assert.Contains(t, rec.all(), "easy, medium")
	app.exec(t, "difficulty hard")
	assert.Equal(t, domain.DifficultyHard, app.engine.Snapshot().Progress.Settings.Difficulty)

	app.exec(t, "phở bò")
	assert.Contains(t, rec.all(), "Không hiểu")
}

func TestAppQuitSaves(t *testing.T) {
	app, _, store := newTestApp(t)
	app.engine.AddCoins(500)

	assert.False(t, app.exec(t, "quit"))
	saved, err := store.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 500, saved.Coins)
}

func TestAppRunStopsOnQuit(t *testing.T) {
	app, _, _ := newTestApp(t)
	in := make(chan string, 3)
	in <- "status"
	in <- ""
	in <- "quit"

	done := make(chan struct{})
	go func() {
		app.run(context.Background(), in)
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("run did not return after quit")
	}
}

func TestAppSpawnAndServeNeedAnOpenStall(t *testing.T) {
	app, rec, _ := newTestApp(t)

	app.exec(t, "spawn")
	app.exec(t, "serve soda")
	assert.Empty(t, app.engine.Snapshot().Customers)
	assert.Equal(t, 2, strings.Count(rec.all(), "Chưa mở hàng"))

	app.exec(t, "start")
	app.exec(t, "spawn")
	app.exec(t, "end")
	assert.Empty(t, app.engine.Snapshot().Customers)
	assert.Equal(t, 0, app.engine.Snapshot().Progress.Coins)
}

func TestAppRecipesSearch(t *testing.T) {
	app, rec, _ := newTestApp(t)

	app.exec(t, "recipes")
	assert.Contains(t, rec.all(), "cafe_vot")
	assert.Contains(t, rec.all(), "soda_chai")

	rec.lines = nil
	app.exec(t, "menu soda")
	out := rec.all()
	assert.Contains(t, out, "soda_chai")
	assert.Contains(t, out, "soda_chanh_muoi")
	assert.NotContains(t, out, "cafe_vot")

	rec.lines = nil
	app.exec(t, "recipes pizza")
	assert.Contains(t, rec.all(), "Không có món nào")
}

func TestAppStatusShowsLastSave(t *testing.T) {
	app, rec, _ := newTestApp(t)
	app.exec(t, "status")
	assert.NotContains(t, rec.all(), "Lưu lần cuối", "memory store has no timestamp")

	log := logger.New(logger.LevelOff, nil)
	file := storage.NewFileStore(filepath.Join(t.TempDir(), "save.json"), log)
	app.store = file
	app.exec(t, "status")
	assert.NotContains(t, rec.all(), "Lưu lần cuối", "nothing saved yet")

	require.NoError(t, file.Save(context.Background(), &domain.SaveRecord{Coins: 1}))
	app.exec(t, "status")
	assert.Contains(t, rec.all(), "Lưu lần cuối")
}
