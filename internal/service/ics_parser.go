package service

import (
	"fmt"
	"io"
	"net/http"
	"sort"
	"strings"
	"time"

	ics "github.com/arran4/golang-ical"
)

// ── ICS 解析器 ──────────────────────────────────────────────
//
// 职责：将标准 iCalendar (RFC 5545) 内容解析为按日期聚合的忙碌时段，
// 用于批量生成 is_available=false 的可用时间记录。
//
// 设计决策：
//   - DTSTART/DTEND 确定日期与时间窗口
//   - RRULE FREQ=WEEKLY 按周展开到导入时间范围内；其它频率按单次处理
//   - EXDATE 指定的日期跳过
//   - 同一天的多个事件合并为一条记录的多个时段
// ─────────────────────────────────────────────────────────────

const (
	icsMaxFileSize  = 5 * 1024 * 1024 // 5MB
	icsFetchTimeout = 30 * time.Second
)

// busyWindow ICS 解析中间结构：某一天的一段忙碌时间
type busyWindow struct {
	Date      time.Time // 当天零点
	StartTime string    // "HH:MM"
	EndTime   string
	Summary   string
}

// FetchICSContent 从 URL 获取 ICS 内容
func FetchICSContent(rawURL string) (io.ReadCloser, error) {
	// webcal:// → https://
	u := rawURL
	if strings.HasPrefix(u, "webcal://") {
		u = "https://" + strings.TrimPrefix(u, "webcal://")
	}

	client := &http.Client{Timeout: icsFetchTimeout}
	resp, err := client.Get(u)
	if err != nil {
		return nil, fmt.Errorf("获取 ICS 失败: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, fmt.Errorf("获取 ICS 失败: HTTP %d", resp.StatusCode)
	}
	// 限制响应体大小，防止恶意 URL 返回超大内容导致 OOM
	return struct {
		io.Reader
		io.Closer
	}{
		Reader: io.LimitReader(resp.Body, icsMaxFileSize),
		Closer: resp.Body,
	}, nil
}

// ParseBusyWindows 解析 ICS 内容，展开 [rangeStart, rangeEnd) 内的忙碌时段
func ParseBusyWindows(reader io.Reader, rangeStart, rangeEnd time.Time) ([]busyWindow, error) {
	cal, err := ics.ParseCalendar(reader)
	if err != nil {
		return nil, fmt.Errorf("ICS 格式解析失败: %w", err)
	}

	loc := rangeStart.Location()

	var windows []busyWindow
	for _, evt := range cal.Events() {
		windows = append(windows, expandVEvent(evt, rangeStart, rangeEnd, loc)...)
	}

	sort.Slice(windows, func(i, j int) bool {
		if !windows[i].Date.Equal(windows[j].Date) {
			return windows[i].Date.Before(windows[j].Date)
		}
		return windows[i].StartTime < windows[j].StartTime
	})
	return windows, nil
}

// expandVEvent 展开单个 VEVENT 在导入范围内的所有出现
func expandVEvent(evt *ics.VEvent, rangeStart, rangeEnd time.Time, loc *time.Location) []busyWindow {
	summary := ""
	if prop := evt.GetProperty(ics.ComponentPropertySummary); prop != nil {
		summary = strings.TrimSpace(prop.Value)
	}

	dtStart, err := parseICSDateTime(evt, ics.ComponentPropertyDtStart, loc)
	if err != nil {
		return nil
	}
	dtEnd, err := parseICSDateTime(evt, ics.ComponentPropertyDtEnd, loc)
	if err != nil {
		// 若无 DTEND 默认 2 小时
		dtEnd = dtStart.Add(2 * time.Hour)
	}

	startTime := dtStart.Format("15:04")
	endTime := dtEnd.Format("15:04")

	rruleProp := evt.GetProperty(ics.ComponentPropertyRrule)
	if rruleProp == nil {
		if day, ok := dateInRange(dtStart, rangeStart, rangeEnd); ok {
			return []busyWindow{{Date: day, StartTime: startTime, EndTime: endTime, Summary: summary}}
		}
		return nil
	}

	rule := parseRRule(rruleProp.Value)
	if rule.freq != "WEEKLY" {
		// 非周重复按单次处理
		if day, ok := dateInRange(dtStart, rangeStart, rangeEnd); ok {
			return []busyWindow{{Date: day, StartTime: startTime, EndTime: endTime, Summary: summary}}
		}
		return nil
	}

	exDates := parseExDates(evt, loc)

	interval := rule.interval
	if interval < 1 {
		interval = 1
	}

	var windows []busyWindow
	current := dtStart
	count := 0
	for {
		if !rule.until.IsZero() && current.After(rule.until) {
			break
		}
		if rule.count > 0 && count >= rule.count {
			break
		}
		if !current.Before(rangeEnd) {
			break
		}

		if day, ok := dateInRange(current, rangeStart, rangeEnd); ok {
			if !exDates[current.Format("20060102")] {
				windows = append(windows, busyWindow{Date: day, StartTime: startTime, EndTime: endTime, Summary: summary})
			}
		}

		count++
		current = current.AddDate(0, 0, 7*interval)
	}
	return windows
}

// dateInRange 判断事件是否落在 [rangeStart, rangeEnd) 内，返回当天零点
func dateInRange(t, rangeStart, rangeEnd time.Time) (time.Time, bool) {
	day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	if day.Before(rangeStart) || !day.Before(rangeEnd) {
		return time.Time{}, false
	}
	return day, true
}

// rruleParams RRULE 解析结果
type rruleParams struct {
	freq     string
	interval int
	count    int
	until    time.Time
}

// parseRRule 解析 RRULE 字符串（如 FREQ=WEEKLY;COUNT=16;INTERVAL=1）
func parseRRule(value string) rruleParams {
	r := rruleParams{interval: 1}
	for _, part := range strings.Split(value, ";") {
		kv := strings.SplitN(part, "=", 2)
		if len(kv) != 2 {
			continue
		}
		switch strings.ToUpper(kv[0]) {
		case "FREQ":
			r.freq = strings.ToUpper(kv[1])
		case "INTERVAL":
			fmt.Sscanf(kv[1], "%d", &r.interval)
		case "COUNT":
			fmt.Sscanf(kv[1], "%d", &r.count)
		case "UNTIL":
			t, err := time.Parse("20060102T150405Z", kv[1])
			if err != nil {
				t, _ = time.Parse("20060102", kv[1])
			}
			r.until = t
		}
	}
	return r
}

// parseExDates 解析事件中所有 EXDATE
func parseExDates(evt *ics.VEvent, loc *time.Location) map[string]bool {
	exDates := make(map[string]bool)
	for _, prop := range evt.Properties {
		if prop.IANAToken == string(ics.ComponentPropertyExdate) {
			t, err := time.Parse("20060102T150405Z", prop.Value)
			if err != nil {
				t, err = time.Parse("20060102T150405", prop.Value)
				if err != nil {
					t, err = time.Parse("20060102", prop.Value)
				}
			}
			if err == nil {
				exDates[t.In(loc).Format("20060102")] = true
			}
		}
	}
	return exDates
}

// parseICSDateTime 从 VEVENT 中解析日期时间属性
func parseICSDateTime(evt *ics.VEvent, propName ics.ComponentProperty, loc *time.Location) (time.Time, error) {
	prop := evt.GetProperty(propName)
	if prop == nil {
		return time.Time{}, fmt.Errorf("missing property %s", propName)
	}
	val := prop.Value

	// 尝试多种 ICS 日期格式
	formats := []string{
		"20060102T150405Z",
		"20060102T150405",
		"20060102",
	}

	// 检查 TZID 参数
	tzid := ""
	for k, v := range prop.ICalParameters {
		if strings.ToUpper(k) == "TZID" && len(v) > 0 {
			tzid = v[0]
		}
	}

	for _, layout := range formats {
		if t, err := time.Parse(layout, val); err == nil {
			if strings.HasSuffix(layout, "Z") {
				return t.In(loc), nil
			}
			if tzid != "" {
				if tzLoc, err := time.LoadLocation(tzid); err == nil {
					return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), 0, tzLoc).In(loc), nil
				}
			}
			return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), 0, loc), nil
		}
	}

	return time.Time{}, fmt.Errorf("无法解析日期: %s", val)
}
