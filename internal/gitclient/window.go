package gitclient

import "time"

// Window は対象日のコミットを選別するための半開区間 [Start, End) です。
type Window struct {
	Start time.Time
	End   time.Time
}

// DayWindow は date を含むローカル日の 0 時から翌日 0 時までの区間を返します。
// 実行日 (今日) を対象とする場合も、日付を明示した場合も同じ区間になります。
func DayWindow(date time.Time) Window {
	local := date.In(time.Local)
	start := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, time.Local)
	return Window{
		Start: start,
		End:   start.AddDate(0, 0, 1),
	}
}

// Contains は t が区間内にあるか判定します。
func (w Window) Contains(t time.Time) bool {
	return !t.Before(w.Start) && t.Before(w.End)
}

func (w Window) String() string {
	return w.Start.Format(time.RFC3339) + " .. " + w.End.Format(time.RFC3339)
}
