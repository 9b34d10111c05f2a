package source

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"sync"

	"actcal/internal/anntext"
	"actcal/internal/match"
	"actcal/internal/model"
	"actcal/internal/timefmt"
	"actcal/internal/version"
)

const (
	defaultGenshinListURL    = "https://hk4e-api.mihoyo.com/common/hk4e_cn/announcement/api/getAnnList?game=hk4e&game_biz=hk4e_cn&lang=zh-cn&bundle_id=hk4e_cn&platform=pc&region=cn_gf01&level=55&uid=100000000"
	defaultGenshinContentURL = "https://hk4e-api-static.mihoyo.com/common/hk4e_cn/announcement/api/getAnnContent?game=hk4e&game_biz=hk4e_cn&lang=zh-cn&bundle_id=hk4e_cn&platform=pc&region=cn_gf01&level=55&uid=100000000"

	// All hk4e announcement timestamps are Asia/Shanghai wall-clock with no
	// offset of their own.
	genshinOffset = "+08:00"
)

var genshinFilter = titleFilter{
	allow: []string{"祈愿"},
	deny:  []string{"问卷", "调研", "维护", "社区", "直播", "防沉迷", "周边", "攻略"},
}

var genshinVersionFilter = version.KeywordFilter{
	Include: []string{"更新说明", "更新公告"},
	Exclude: []string{"维护", "预下载"},
}

type genshinAnn struct {
	AnnID     int64  `json:"ann_id"`
	Title     string `json:"title"`
	Subtitle  string `json:"subtitle"`
	Banner    string `json:"banner"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
}

type genshinTypeGroup struct {
	TypeID    int          `json:"type_id"`
	TypeLabel string       `json:"type_label"`
	List      []genshinAnn `json:"list"`
}

type genshinListResp struct {
	Retcode int    `json:"retcode"`
	Message string `json:"message"`
	Data    struct {
		List []genshinTypeGroup `json:"list"`
	} `json:"data"`
}

type genshinContent struct {
	AnnID   int64  `json:"ann_id"`
	Title   string `json:"title"`
	Banner  string `json:"banner"`
	Content string `json:"content"`
}

type genshinContentResp struct {
	Retcode int `json:"retcode"`
	Data    struct {
		List []genshinContent `json:"list"`
	} `json:"data"`
}

// fetchGenshin reads the hk4e announcement list and, in parallel, the
// announcement content payload. List entries under an activity type group
// become events; the content payload enriches them with banner and body and,
// for wish banners, replaces the listing window with the precise range
// extracted from the body text. Version-update notices are resolved from the
// full listing regardless of type group.
func (p *Pipeline) fetchGenshin(ctx context.Context) ([]model.CalendarEvent, *model.GameVersionInfo, error) {
	listURL := p.cfg.GenshinListURL
	if listURL == "" {
		listURL = defaultGenshinListURL
	}
	contentURL := p.cfg.GenshinContentURL
	if contentURL == "" {
		contentURL = defaultGenshinContentURL
	}

	var (
		pool       []model.ContentCandidate
		contentErr error
		wg         sync.WaitGroup
	)
	wg.Add(1)
	go func() {
		defer wg.Done()
		var resp genshinContentResp
		if contentErr = p.client.JSON(ctx, "genshin.content", contentURL, &resp); contentErr != nil {
			return
		}
		if resp.Retcode != 0 {
			contentErr = fmt.Errorf("genshin content retcode %d", resp.Retcode)
			return
		}
		for _, c := range resp.Data.List {
			pool = append(pool, match.NewCandidate(c.Title, c.Banner, c.Content))
		}
	}()

	var list genshinListResp
	listErr := p.client.JSON(ctx, "genshin.list", listURL, &list)
	wg.Wait()
	if listErr != nil {
		return nil, nil, listErr
	}
	if list.Retcode != 0 {
		return nil, nil, fmt.Errorf("genshin list retcode %d: %s", list.Retcode, list.Message)
	}
	if contentErr != nil {
		// Events still ship with listing data only.
		p.log.WithGame(model.GameGenshin).WithError(contentErr).Warn("content enrichment unavailable")
		pool = nil
	}

	var candidates []model.CalendarEvent
	var notices []version.Notice
	for _, group := range list.Data.List {
		activityGroup := strings.Contains(group.TypeLabel, "活动")
		for _, ann := range group.List {
			title := anntext.StripHTML(ann.Title)
			annID := strconv.FormatInt(ann.AnnID, 10)

			if genshinVersionFilter.Match(title) {
				n, ok := noticeFromWindow(annID, title, ann.Subtitle,
					timefmt.ToISOWithOffset(ann.StartTime, genshinOffset),
					timefmt.ToISOWithOffset(ann.EndTime, genshinOffset))
				if ok {
					notices = append(notices, n)
				}
			}
			if !activityGroup {
				continue
			}
			if !genshinFilter.keep(title) {
				p.log.WithGame(model.GameGenshin).WithField("title", title).Debug("filtered announcement")
				continue
			}

			gacha := isGacha(model.GameGenshin, title)
			start, end := ann.StartTime, ann.EndTime
			banner, content := ann.Banner, ""
			if cand, ok := match.Best(title, pool); ok {
				if banner == "" {
					banner = cand.Banner
				}
				content = cand.Content
				// The listing window of a wish is the announcement's
				// visibility, not the banner's runtime. The body text carries
				// the real range; a missing side keeps the listing value.
				if gacha && content != "" {
					r := anntext.ExtractRange(content)
					if r.Start != "" {
						start = r.Start
					}
					if r.End != "" {
						end = r.End
					}
				}
			}

			candidates = append(candidates, model.CalendarEvent{
				ID:        annID,
				Title:     title,
				StartTime: timefmt.ToISOWithOffset(start, genshinOffset),
				EndTime:   timefmt.ToISOWithOffset(end, genshinOffset),
				IsGacha:   gacha,
				Banner:    banner,
				Content:   content,
			})
		}
	}

	return p.finalize(model.GameGenshin, candidates), resolveVersion(model.GameGenshin, notices, p.now()), nil
}
