package source

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"actcal/internal/anntext"
	"actcal/internal/fetch"
	"actcal/internal/model"
	"actcal/internal/timefmt"
	"actcal/internal/version"
)

const (
	// The %s slot takes the channel token baked into the launcher bundle.
	defaultWutheringListURL = "https://aki-gm-resources.aki-game.com/gamenotice/G152/%s/notice.json"

	wutheringBootstrapURL = "https://mc.kurogames.com/"

	// Last token observed in the live bundle. Discovery replaces it at
	// runtime; this value only serves when discovery fails outright.
	fallbackWutheringChannel = "76402e5b20be2c39f095a152090afddc"

	wutheringOffset = "+08:00"
)

var (
	wutheringScriptPattern = regexp.MustCompile(`<script[^>]+src="([^"]+\.js)"`)
	wutheringTokenPattern  = regexp.MustCompile(`G152/([0-9A-Za-z]{16,40})/`)
)

var wutheringFilter = titleFilter{
	allow: []string{"唤取"},
	deny:  []string{"问卷", "征集", "直播", "社区", "反馈", "维护"},
}

var wutheringVersionFilter = version.KeywordFilter{
	Include: []string{"更新公告", "更新说明"},
	Exclude: []string{"预下载"},
}

func newWutheringDiscoverer(client *fetch.Client) *fetch.Discoverer {
	return fetch.NewDiscoverer(client, "wuthering.channel", wutheringBootstrapURL,
		wutheringScriptPattern, wutheringTokenPattern, fallbackWutheringChannel)
}

type wutheringNotice struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Banner      string `json:"banner"`
	Content     string `json:"content"`
	StartTime   string `json:"startTime"`
	EndTime     string `json:"endTime"`
	PublishedAt int64  `json:"publishTime"`
}

type wutheringListResp struct {
	Game     []wutheringNotice `json:"game"`
	Activity []wutheringNotice `json:"activity"`
}

// fetchWuthering reads the Kuro game-notice payload addressed by the
// discovered channel token. Activity notices ship their body inline, so
// enrichment needs no second request; empty structured times are recovered
// from the body, and a notice whose body only promises "after the version
// update" is anchored to its publish timestamp. Version notices live in the
// game group of the same payload.
func (p *Pipeline) fetchWuthering(ctx context.Context) ([]model.CalendarEvent, *model.GameVersionInfo, error) {
	listURL := p.cfg.WutheringListURL
	if listURL == "" {
		listURL = defaultWutheringListURL
	}
	if strings.Contains(listURL, "%s") {
		key := p.cfg.WutheringChannelKey
		if key == "" {
			key = p.wutheringChannel.Resolve(ctx)
		}
		listURL = fmt.Sprintf(listURL, key)
	}

	var list wutheringListResp
	if err := p.client.JSON(ctx, "wuthering.list", listURL, &list); err != nil {
		return nil, nil, err
	}

	var notices []version.Notice
	for _, groups := range [][]wutheringNotice{list.Game, list.Activity} {
		for _, n := range groups {
			title := anntext.StripHTML(n.Title)
			if !wutheringVersionFilter.Match(title) {
				continue
			}
			notice, ok := noticeFromWindow(n.ID, title, "",
				timefmt.ToISOWithOffset(n.StartTime, wutheringOffset),
				timefmt.ToISOWithOffset(n.EndTime, wutheringOffset))
			if ok {
				notices = append(notices, notice)
			}
		}
	}

	var candidates []model.CalendarEvent
	for _, n := range list.Activity {
		title := anntext.StripHTML(n.Title)
		if !wutheringFilter.keep(title) {
			p.log.WithGame(model.GameWutheringWaves).WithField("title", title).Debug("filtered announcement")
			continue
		}

		start, end := n.StartTime, n.EndTime
		if start == "" || end == "" {
			r := anntext.ExtractRange(n.Content)
			if start == "" {
				start = r.Start
			}
			if end == "" {
				end = r.End
			}
		}
		// "After the version update" in the body means the notice goes up the
		// moment the window opens, so the publish instant is the start.
		if start == "" && n.PublishedAt > 0 && anntext.HasFuzzyStart(n.Content) {
			if iso, err := timefmt.UnixSecondsToISO(n.PublishedAt, wutheringOffset); err == nil {
				start = iso
			}
		}

		candidates = append(candidates, model.CalendarEvent{
			ID:        eventID(n.ID, title, start),
			Title:     title,
			StartTime: timefmt.ToISOWithOffset(start, wutheringOffset),
			EndTime:   timefmt.ToISOWithOffset(end, wutheringOffset),
			IsGacha:   isGacha(model.GameWutheringWaves, title),
			Banner:    n.Banner,
			Content:   n.Content,
		})
	}

	return p.finalize(model.GameWutheringWaves, candidates), resolveVersion(model.GameWutheringWaves, notices, p.now()), nil
}
