package source

import (
	"context"
	"strconv"

	"actcal/internal/anntext"
	"actcal/internal/model"
	"actcal/internal/timefmt"
)

const (
	defaultBlueArchiveListURL = "https://prod-noticeindex.bluearchiveyostar.com/prod/index.json"

	// Yostar serves JST wall-clock times like "2026/03/01 11:00".
	blueArchiveOffset = "+09:00"
)

var blueArchiveFilter = titleFilter{
	allow: []string{"募集"},
	deny:  []string{"メンテナンス", "不具合", "アンケート", "生放送", "移行"},
}

type blueArchiveNotice struct {
	NoticeID  int64  `json:"NoticeId"`
	Title     string `json:"Title"`
	StartDate string `json:"StartDate"`
	EndDate   string `json:"EndDate"`
	Banner    string `json:"BannerUrl"`
}

type blueArchiveIndex struct {
	Notices []blueArchiveNotice `json:"Notices"`
}

// fetchBlueArchive reads the Yostar notice index. Notices carry minute
// precision JST windows and no body, so there is no enrichment and no
// version notice.
func (p *Pipeline) fetchBlueArchive(ctx context.Context) ([]model.CalendarEvent, *model.GameVersionInfo, error) {
	listURL := p.cfg.BlueArchiveListURL
	if listURL == "" {
		listURL = defaultBlueArchiveListURL
	}

	var index blueArchiveIndex
	if err := p.client.JSON(ctx, "bluearchive.list", listURL, &index); err != nil {
		return nil, nil, err
	}

	var candidates []model.CalendarEvent
	for _, n := range index.Notices {
		title := anntext.StripHTML(n.Title)
		if n.StartDate == "" || n.EndDate == "" {
			p.log.WithGame(model.GameBlueArchive).WithField("title", title).Debug("notice without window")
			continue
		}
		if !blueArchiveFilter.keep(title) {
			p.log.WithGame(model.GameBlueArchive).WithField("title", title).Debug("filtered announcement")
			continue
		}
		candidates = append(candidates, model.CalendarEvent{
			ID:        strconv.FormatInt(n.NoticeID, 10),
			Title:     title,
			StartTime: timefmt.ToISOWithOffset(n.StartDate, blueArchiveOffset),
			EndTime:   timefmt.ToISOWithOffset(n.EndDate, blueArchiveOffset),
			IsGacha:   isGacha(model.GameBlueArchive, title),
			Banner:    n.Banner,
		})
	}

	return p.finalize(model.GameBlueArchive, candidates), nil, nil
}
