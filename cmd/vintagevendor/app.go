package main

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/hammamikhairi/vintagevendor/internal/display"
	"github.com/hammamikhairi/vintagevendor/internal/domain"
	"github.com/hammamikhairi/vintagevendor/internal/engine"
	"github.com/hammamikhairi/vintagevendor/internal/logger"
	"github.com/hammamikhairi/vintagevendor/internal/recipe"
	"github.com/hammamikhairi/vintagevendor/internal/serve"
)

// output is the part of display.UI the command loop writes to.
type output interface {
	PrintChat(text string)
	PrintHeader(text string)
	PrintLine(text string)
	PrintHint(text string)
	PrintUrgent(text string)
	PrintBlock(text string)
}

// saveClock is implemented by stores that know when they last wrote.
type saveClock interface {
	SavedAt(ctx context.Context) (time.Time, error)
}

type cliApp struct {
	engine   *engine.Engine
	catalog  *recipe.Catalog
	menu     domain.RecipeSource
	store    domain.ProgressStore
	parser   domain.CommandParser
	notifier domain.Notifier
	log      *logger.Logger
	out      output
}

func (a *cliApp) run(ctx context.Context, input <-chan string) {
	a.out.PrintChat("Chào mừng tới quán! Gõ 'start' để mở hàng.")
	a.showStatus(ctx)

	for {
		var line string
		var ok bool
		select {
		case <-ctx.Done():
			return
		case line, ok = <-input:
			if !ok {
				return
			}
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		cmd, err := a.parser.Parse(ctx, line)
		if err != nil {
			a.log.Error("parsing input: %v", err)
			continue
		}
		a.log.Debug("command: %s %v", cmd.Type, cmd.Args)
		if !a.handle(ctx, cmd) {
			return
		}
	}
}

// handle runs one command. It returns false when the player quits.
func (a *cliApp) handle(ctx context.Context, cmd *domain.Command) bool {
	switch cmd.Type {
	case domain.CmdHelp:
		a.out.PrintBlock(display.HelpText)
	case domain.CmdStart:
		a.start()
	case domain.CmdSpawn:
		if a.engine.Snapshot().State != domain.StatePlaying {
			a.out.PrintHint("Chưa mở hàng. Gõ 'start' trước.")
			return true
		}
		if !a.engine.SpawnCustomerWithOrder() {
			a.out.PrintHint("Hàng đợi đã đầy.")
			return true
		}
		snap := a.engine.Snapshot()
		a.out.PrintBlock(display.FormatCustomer(snap.Customers[len(snap.Customers)-1], snap.Progress.Settings.Language))
	case domain.CmdAccept:
		a.accept()
	case domain.CmdServe:
		a.serve(cmd.Args)
	case domain.CmdHint:
		a.hint(cmd.Arg(0))
	case domain.CmdPause:
		if a.engine.PauseGame() {
			a.out.PrintHint("Tạm dừng.")
		}
	case domain.CmdResume:
		if a.engine.ResumeGame() {
			a.out.PrintHint("Tiếp tục!")
		}
	case domain.CmdEnd:
		if a.engine.EndGame() {
			if err := a.notifier.Notify(ctx, "Dọn hàng thôi!"); err != nil {
				a.log.Error("notifying end: %v", err)
			}
			a.showStatus(ctx)
		}
	case domain.CmdStatus:
		a.showStatus(ctx)
	case domain.CmdLeaderboard:
		a.out.PrintHeader("Bảng xếp hạng")
		a.out.PrintBlock(display.FormatLeaderboard(a.engine.Snapshot().Progress.Leaderboard, 10))
	case domain.CmdStats:
		p := a.engine.Snapshot().Progress
		a.out.PrintHeader("Thống kê")
		a.out.PrintBlock(display.FormatStats(p.Stats, p))
	case domain.CmdJournal:
		a.out.PrintHeader("Nhật ký")
		a.out.PrintBlock(display.FormatJournal(a.engine.Snapshot().Progress.Journal))
	case domain.CmdRecipes:
		a.recipes(ctx, strings.Join(cmd.Args, " "))
	case domain.CmdReward:
		a.reward(cmd.Arg(0))
	case domain.CmdDifficulty:
		d := domain.Difficulty(cmd.Arg(0))
		if !d.Valid() {
			a.out.PrintUrgent("Độ khó: easy, medium hoặc hard.")
			return true
		}
		a.engine.UpdateSettings(domain.SettingsPatch{Difficulty: &d})
		a.out.PrintHint(fmt.Sprintf("Độ khó: %s (áp dụng từ ván sau).", d))
	case domain.CmdReset:
		a.engine.ResetGame()
		a.out.PrintHint("Đã về menu.")
	case domain.CmdQuit:
		if err := a.engine.Save(ctx); err != nil {
			a.log.Error("saving: %v", err)
		}
		a.out.PrintChat("Hẹn gặp lại!")
		return false
	default:
		a.out.PrintHint("Không hiểu lệnh. Gõ 'help' nhé.")
	}
	return true
}

func (a *cliApp) start() {
	if !a.engine.StartGame() {
		p := a.engine.Snapshot().Progress
		a.out.PrintUrgent(fmt.Sprintf("Hết năng lượng (%d/%d). Đợi hồi hoặc gõ 'reward energy'.", p.Energy, p.MaxEnergy))
		return
	}
	snap := a.engine.Snapshot()
	a.out.PrintChat(fmt.Sprintf("Mở hàng! %ds, năng lượng còn %d.", snap.TimeRemaining, snap.Progress.Energy))
}

func (a *cliApp) accept() {
	if !a.engine.AcceptOrder() {
		a.out.PrintHint("Không có đơn nào để nhận.")
		return
	}
	snap := a.engine.Snapshot()
	head, _ := snap.Head()
	a.out.PrintBlock(display.FormatCustomer(head, snap.Progress.Settings.Language))
	if len(head.Order.Items) > 0 {
		item := head.Order.Items[0]
		def, known := a.catalog.Lookup(item.ID)
		temp := domain.TemperatureHot
		if known {
			temp = def.Temperature
		}
		a.out.PrintChat(display.NpcLine(item, temp, known))
	}
}

func (a *cliApp) serve(ids []string) {
	if a.engine.Snapshot().State != domain.StatePlaying {
		a.out.PrintHint("Chưa mở hàng. Gõ 'start' trước.")
		return
	}
	out := a.engine.Serve(ids)
	if !out.Applied {
		a.out.PrintHint(display.FormatServe(out))
		return
	}
	if out.OK {
		a.out.PrintChat(display.FormatServe(out))
		a.engine.FinalizeServeCurrentCustomerCorrect()
		return
	}
	a.out.PrintUrgent(display.FormatServe(out))
	if def, ok := serve.CompileDish(a.catalog, ids); ok {
		a.out.PrintHint(fmt.Sprintf("Cái này là %s mà.", def.Name))
	}
}

func (a *cliApp) hint(id string) {
	if id == "" {
		head, ok := a.engine.Snapshot().Head()
		if !ok {
			a.out.PrintHint("Gợi ý món nào? Ví dụ: hint che")
			return
		}
		id = head.Order.FirstItemID()
	}
	ids, ok := a.engine.GetRecipeHint(id)
	if !ok {
		a.out.PrintHint("Hết lượt gợi ý.")
		return
	}
	names := make([]string, len(ids))
	for i, ingID := range ids {
		names[i] = fmt.Sprintf("%s (%s)", recipe.ResolveIngredient(ingID).Name, ingID)
	}
	a.out.PrintHint("Gợi ý: " + strings.Join(names, ", "))
}

func (a *cliApp) reward(kind string) {
	k := domain.RewardFromString(kind)
	if k == domain.RewardUnknown {
		a.out.PrintUrgent("Phần thưởng: energy, hint hoặc coins.")
		return
	}
	n := a.engine.GrantReward(k)
	switch k {
	case domain.RewardCurrency:
		a.out.PrintChat("+" + display.Coins(n))
	default:
		a.out.PrintChat(fmt.Sprintf("+%d %s", n, k))
	}
}

func (a *cliApp) showStatus(ctx context.Context) {
	a.engine.RefreshEnergy()
	a.out.PrintBlock(display.FormatStatus(a.engine.Snapshot()))

	sc, ok := a.store.(saveClock)
	if !ok {
		return
	}
	at, err := sc.SavedAt(ctx)
	switch {
	case errors.Is(err, domain.ErrNotFound):
	case err != nil:
		a.log.Warn("reading save time: %v", err)
	default:
		a.out.PrintHint(display.FormatSavedAt(at))
	}
}

// recipes lists the menu, or only the dishes matching query.
func (a *cliApp) recipes(ctx context.Context, query string) {
	var (
		found []domain.RecipeSummary
		err   error
	)
	if query == "" {
		found, err = a.menu.List(ctx)
	} else {
		found, err = a.menu.Search(ctx, query)
	}
	if err != nil {
		a.log.Error("listing recipes: %v", err)
		return
	}
	if len(found) == 0 {
		a.out.PrintHint(fmt.Sprintf("Không có món nào khớp %q.", query))
		return
	}

	defs := make([]*domain.RecipeDefinition, 0, len(found))
	for _, sum := range found {
		def, err := a.menu.Get(ctx, sum.ID)
		if err != nil {
			a.log.Warn("recipe %s vanished: %v", sum.ID, err)
			continue
		}
		defs = append(defs, def)
	}
	a.out.PrintHeader("Thực đơn")
	a.out.PrintBlock(display.FormatRecipeDefs(defs))
}
