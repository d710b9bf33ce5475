package display

import (
	"fmt"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/hammamikhairi/vintagevendor/internal/domain"
	"github.com/hammamikhairi/vintagevendor/internal/engine"
)

var requirementLabels = map[domain.Language]map[domain.Requirement]string{
	domain.LangVietnamese: {
		domain.ReqLessIce:       "Ít đá",
		domain.ReqNoIce:         "Không đá",
		domain.ReqExtraIce:      "Thêm đá",
		domain.ReqHot:           "Nóng",
		domain.ReqCold:          "Lạnh",
		domain.ReqChilled:       "Ướp lạnh",
		domain.ReqNotSpicy:      "Không cay",
		domain.ReqSpicy:         "Cay",
		domain.ReqExtraLime:     "Thêm chanh",
		domain.ReqLessSalt:      "Ít muối",
		domain.ReqNoSalt:        "Không muối",
		domain.ReqLessSeasoning: "Ít gia vị",
		domain.ReqLessPepper:    "Ít tiêu",
		domain.ReqExtraChili:    "Thêm tương ớt",
		domain.ReqLessChili:     "Ít tương ớt",
		domain.ReqNoGreens:      "Không rau",
		domain.ReqExtraCucumber: "Thêm dưa leo",
		domain.ReqExtraPickles:  "Thêm đồ chua",
		domain.ReqLessSweet:     "Ít ngọt",
	},
	domain.LangEnglish: {
		domain.ReqLessIce:       "Less ice",
		domain.ReqNoIce:         "No ice",
		domain.ReqExtraIce:      "Extra ice",
		domain.ReqHot:           "Hot",
		domain.ReqCold:          "Cold",
		domain.ReqChilled:       "Chilled",
		domain.ReqNotSpicy:      "Not spicy",
		domain.ReqSpicy:         "Spicy",
		domain.ReqExtraLime:     "Extra lime",
		domain.ReqLessSalt:      "Less salt",
		domain.ReqNoSalt:        "No salt",
		domain.ReqLessSeasoning: "Less seasoning",
		domain.ReqLessPepper:    "Less pepper",
		domain.ReqExtraChili:    "Extra chili sauce",
		domain.ReqLessChili:     "Less chili sauce",
		domain.ReqNoGreens:      "No greens",
		domain.ReqExtraCucumber: "Extra cucumber",
		domain.ReqExtraPickles:  "Extra pickles",
		domain.ReqLessSweet:     "Less sweet",
	},
}

// RequirementLabel localizes a requirement key. Unknown languages fall
// back to Vietnamese and unknown requirements to the raw key.
func RequirementLabel(r domain.Requirement, lang domain.Language) string {
	table, ok := requirementLabels[lang]
	if !ok {
		table = requirementLabels[domain.LangVietnamese]
	}
	if s, ok := table[r]; ok {
		return s
	}
	return r.String()
}

// npcLines is what a customer says about their most pressing request.
var npcLines = map[domain.Requirement]string{
	domain.ReqExtraIce:  "Nhớ cho đúng phần đá nghen!",
	domain.ReqLessIce:   "Cho ít đá thôi nghen!",
	domain.ReqNoIce:     "Không cho đá nhé!",
	domain.ReqLessSweet: "Ít đường thôi!",
	domain.ReqNotSpicy:  "Không cay dùm nhé!",
	domain.ReqSpicy:     "Cho cay cay nhé!",
	domain.ReqHot:       "Làm nóng nhé!",
	domain.ReqCold:      "Làm lạnh nhé!",
}

// NpcLine picks the customer's reminder for an order item. Ice and cold
// lines never go with a hot dish, nor hot lines with a cold one.
func NpcLine(item domain.OrderItem, temp domain.Temperature, known bool) string {
	for _, r := range item.Requirements {
		line, ok := npcLines[r]
		if !ok {
			continue
		}
		if known && temp == domain.TemperatureHot {
			switch r {
			case domain.ReqCold, domain.ReqExtraIce, domain.ReqLessIce, domain.ReqNoIce:
				continue
			}
		}
		if known && temp == domain.TemperatureCold && r == domain.ReqHot {
			continue
		}
		return line
	}
	switch {
	case !known:
		return "Nhớ pha cho đúng nhé!"
	case temp == domain.TemperatureHot:
		return "Làm nóng giùm nhé!"
	default:
		return "Nhớ cho đúng phần đá nhé!"
	}
}

// Coins formats a coin amount with thousands separators.
func Coins(n int) string {
	return humanize.Comma(int64(n)) + " đ"
}

// FormatCustomer describes a waiting customer and their order.
func FormatCustomer(c domain.Customer, lang domain.Language) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Khách %s (%s, kiên nhẫn %d, %s)\n", shortID(c.ID), c.Archetype, c.Patience, c.Mood)
	for _, it := range c.Order.Items {
		fmt.Fprintf(&b, "• %s  %s", it.Name, Coins(it.Price))
		if len(it.Requirements) > 0 {
			labels := make([]string, len(it.Requirements))
			for i, r := range it.Requirements {
				labels[i] = RequirementLabel(r, lang)
			}
			fmt.Fprintf(&b, "  [%s]", strings.Join(labels, ", "))
		}
		b.WriteByte('\n')
	}
	fmt.Fprintf(&b, "Tổng %s, %ds", Coins(c.Order.TotalPrice), c.Order.TimeLimit)
	return b.String()
}

// FormatServe summarizes a serve outcome.
func FormatServe(out engine.ServeOutcome) string {
	switch {
	case !out.Applied:
		return "Chưa có khách nào."
	case out.OK:
		return fmt.Sprintf("Chuẩn vị! +%d điểm, +%s", out.Points, Coins(out.Coins))
	}
	var b strings.Builder
	b.WriteString("Sai món rồi!")
	if len(out.Missing) > 0 {
		fmt.Fprintf(&b, " Thiếu: %s.", strings.Join(out.Missing, ", "))
	}
	if len(out.Extra) > 0 {
		fmt.Fprintf(&b, " Thừa: %s.", strings.Join(out.Extra, ", "))
	}
	fmt.Fprintf(&b, " -%s", Coins(out.Coins))
	return b.String()
}

// FormatStatus is the long form of the status bar.
func FormatStatus(s engine.Snapshot) string {
	p := s.Progress
	var b strings.Builder
	fmt.Fprintf(&b, "%s | cấp %d, %d exp | %s\n", p.PlayerName, p.Level, p.Exp, Coins(p.Coins))
	fmt.Fprintf(&b, "Năng lượng %d/%d | gợi ý: %d miễn phí, %d vé | ngày %d\n",
		p.Energy, p.MaxEnergy, p.Hints.DailyFree, p.Hints.Tokens, p.JourneyDay)
	fmt.Fprintf(&b, "Trạng thái %s, độ khó %s", s.State, p.Settings.Difficulty)
	if s.State == domain.StatePlaying {
		fmt.Fprintf(&b, "\nĐiểm %d, combo %d, còn %ds, khách %d/%d, phiên này %s",
			s.Score, s.Combo, s.TimeRemaining, len(s.Customers), s.QueueCapacity, Coins(s.SessionCoins))
		if s.Paused {
			b.WriteString(" (tạm dừng)")
		}
	}
	return b.String()
}

// FormatLeaderboard lists the top n rows.
func FormatLeaderboard(rows []domain.LeaderboardEntry, n int) string {
	if len(rows) == 0 {
		return "Chưa có ván nào."
	}
	var b strings.Builder
	for i, r := range rows {
		if n > 0 && i >= n {
			break
		}
		fmt.Fprintf(&b, "%s  %-12s %s  %d khách  %ds\n",
			humanize.Ordinal(r.Rank), r.PlayerName, Coins(r.Score), r.CustomersServed, r.Duration)
	}
	return strings.TrimRight(b.String(), "\n")
}

// FormatStats prints the lifetime counters.
func FormatStats(st domain.Stats, rec domain.SaveRecord) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Số ván %d, điểm cao %d, xu cao %s\n", rec.TotalGamesPlayed, rec.HighScore, Coins(rec.HighCoins))
	fmt.Fprintf(&b, "Sai món %d, thiếu nguyên liệu %d, soda chai %d\n", st.WrongServeCount, st.OutOfStockCount, st.TotalSodaChaiSold)
	for _, a := range domain.Archetypes {
		fmt.Fprintf(&b, "%s: %d  ", a, st.CustomerTypeCounts[a])
	}
	return strings.TrimRight(b.String(), " ")
}

// FormatJournal prints milestones with a check for achieved ones.
func FormatJournal(entries []domain.JournalEntry) string {
	if len(entries) == 0 {
		return "Nhật ký trống."
	}
	var b strings.Builder
	for _, j := range entries {
		mark := "[ ]"
		if j.Achieved {
			mark = "[x]"
		}
		fmt.Fprintf(&b, "%s ngày %d: %s\n", mark, j.Day, j.Title)
	}
	return strings.TrimRight(b.String(), "\n")
}

// FormatRecipeDefs prints one line per recipe: id, name, price and
// ingredient ids.
func FormatRecipeDefs(defs []*domain.RecipeDefinition) string {
	var b strings.Builder
	for _, r := range defs {
		fmt.Fprintf(&b, "%-18s %-20s %s  (%s)\n", r.ID, r.Name, Coins(r.BasePrice), strings.Join(r.IngredientIDs(), " "))
	}
	return strings.TrimRight(b.String(), "\n")
}

// FormatSavedAt reports how long ago progress was written.
func FormatSavedAt(at time.Time) string {
	return "Lưu lần cuối: " + humanize.Time(at)
}

// HelpText lists the commands.
const HelpText = `start                bắt đầu ván mới (tốn 1 năng lượng)
spawn                gọi khách tiếp theo
accept               nhận đơn của khách đầu hàng
serve <id> [id...]   đưa món với các nguyên liệu đã chọn
hint [món]           gợi ý nguyên liệu
pause / resume       tạm dừng / tiếp tục
end                  kết thúc ván
recipes [tìm]        thực đơn, lọc theo tên món
status, board, stats, journal
reward <energy|hint|coins>
difficulty <easy|medium|hard>
reset, quit, help`

func shortID(id string) string {
	if i := strings.LastIndexByte(id, '_'); i >= 0 && len(id)-i > 6 {
		return id[i+1 : i+7]
	}
	return id
}
