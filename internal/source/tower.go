package source

import (
	"context"
	"fmt"
	"strconv"
	"sync"

	"actcal/internal/anntext"
	"actcal/internal/match"
	"actcal/internal/model"
	"actcal/internal/timefmt"
	"actcal/internal/version"
)

const (
	defaultTowerListURL    = "https://hotta.wanmei.com/phoneapi/news/list?category=activity&page=1&limit=30"
	defaultTowerContentURL = "https://hotta.wanmei.com/phoneapi/news/list?category=news&page=1&limit=30"

	towerOffset = "+08:00"
)

var towerFilter = titleFilter{
	allow: []string{"探机"},
	deny:  []string{"问卷", "调研", "社区", "周边", "直播", "攻略"},
}

var towerVersionFilter = version.KeywordFilter{
	Include: []string{"更新公告", "更新说明", "版本上线"},
	Exclude: []string{"补偿"},
}

type towerArticle struct {
	ID        int64  `json:"id"`
	Title     string `json:"title"`
	Cover     string `json:"cover"`
	Content   string `json:"content"`
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
}

type towerListResp struct {
	Code int    `json:"code"`
	Msg  string `json:"msg"`
	Data struct {
		List []towerArticle `json:"list"`
	} `json:"data"`
}

// fetchTower reads the activity article list and, in parallel, the news
// article pool. Activity articles carry date-only windows; a fuzzy-matched
// news body refines them to clock precision when it names one. Version
// notices come from the news pool, so the version result degrades to nil
// when that fetch fails while events keep flowing.
func (p *Pipeline) fetchTower(ctx context.Context) ([]model.CalendarEvent, *model.GameVersionInfo, error) {
	listURL := p.cfg.TowerListURL
	if listURL == "" {
		listURL = defaultTowerListURL
	}
	contentURL := p.cfg.TowerContentURL
	if contentURL == "" {
		contentURL = defaultTowerContentURL
	}

	var (
		pool       []model.ContentCandidate
		notices    []version.Notice
		contentErr error
		wg         sync.WaitGroup
	)
	wg.Add(1)
	go func() {
		defer wg.Done()
		var news towerListResp
		if contentErr = p.client.JSON(ctx, "tower.news", contentURL, &news); contentErr != nil {
			return
		}
		if news.Code != 0 {
			contentErr = fmt.Errorf("tower news code %d: %s", news.Code, news.Msg)
			return
		}
		for _, a := range news.Data.List {
			pool = append(pool, match.NewCandidate(a.Title, a.Cover, a.Content))
			title := anntext.StripHTML(a.Title)
			if !towerVersionFilter.Match(title) {
				continue
			}
			r := anntext.ExtractRange(a.Content)
			notice, ok := noticeFromWindow(strconv.FormatInt(a.ID, 10), title, "",
				timefmt.ToISOWithOffset(r.Start, towerOffset),
				timefmt.ToISOWithOffset(r.End, towerOffset))
			if ok {
				notices = append(notices, notice)
			}
		}
	}()

	var list towerListResp
	listErr := p.client.JSON(ctx, "tower.list", listURL, &list)
	wg.Wait()
	if listErr != nil {
		return nil, nil, listErr
	}
	if list.Code != 0 {
		return nil, nil, fmt.Errorf("tower list code %d: %s", list.Code, list.Msg)
	}
	if contentErr != nil {
		p.log.WithGame(model.GameTowerOfFantasy).WithError(contentErr).Warn("news enrichment unavailable")
		pool, notices = nil, nil
	}

	var candidates []model.CalendarEvent
	for _, a := range list.Data.List {
		title := anntext.StripHTML(a.Title)
		if !towerFilter.keep(title) {
			p.log.WithGame(model.GameTowerOfFantasy).WithField("title", title).Debug("filtered announcement")
			continue
		}

		// Date-only fields resolve to midnight; a matched body that names
		// clock times narrows them.
		start, end := a.StartTime, a.EndTime
		banner, content := a.Cover, a.Content
		if cand, ok := match.Best(title, pool); ok {
			if banner == "" {
				banner = cand.Banner
			}
			if content == "" {
				content = cand.Content
			}
			r := anntext.ExtractRange(cand.Content)
			if r.Start != "" {
				start = r.Start
			}
			if r.End != "" {
				end = r.End
			}
		}

		candidates = append(candidates, model.CalendarEvent{
			ID:        strconv.FormatInt(a.ID, 10),
			Title:     title,
			StartTime: timefmt.ToISOWithOffset(start, towerOffset),
			EndTime:   timefmt.ToISOWithOffset(end, towerOffset),
			IsGacha:   isGacha(model.GameTowerOfFantasy, title),
			Banner:    banner,
			Content:   content,
		})
	}

	return p.finalize(model.GameTowerOfFantasy, candidates), resolveVersion(model.GameTowerOfFantasy, notices, p.now()), nil
}
