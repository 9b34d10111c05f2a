package source

import (
	"context"
	"fmt"
	"strconv"

	"actcal/internal/anntext"
	"actcal/internal/model"
	"actcal/internal/timefmt"
	"actcal/internal/version"
)

const (
	defaultAzurLaneListURL = "https://line1-h5-pc-api.biligame.com/game/notice/list?game_base_id=101520&type_id=2&page_num=1&page_size=20"

	azurLaneOffset = "+08:00"
)

// 更新 is denied so version-update notices never double as events; they are
// picked up by the version filter instead.
var azurLaneFilter = titleFilter{
	allow: []string{"建造"},
	deny:  []string{"更新", "问卷", "维护", "社区", "周边", "直播"},
}

var azurLaneVersionFilter = version.KeywordFilter{
	Include: []string{"更新公告", "更新说明"},
	Exclude: []string{"维护补偿", "取消"},
}

type azurLaneNotice struct {
	ID      int64  `json:"id"`
	Title   string `json:"title"`
	Content string `json:"content"`
	Image   string `json:"image"`
}

type azurLaneListResp struct {
	Code    int              `json:"code"`
	Message string           `json:"message"`
	Data    []azurLaneNotice `json:"data"`
}

// fetchAzurLane reads the bilibili portal notice list. Notices carry no
// structured times at all; every window comes out of the HTML body, and a
// notice whose body yields less than a full range is dropped. Version
// notices take their window from the body the same way.
func (p *Pipeline) fetchAzurLane(ctx context.Context) ([]model.CalendarEvent, *model.GameVersionInfo, error) {
	listURL := p.cfg.AzurLaneListURL
	if listURL == "" {
		listURL = defaultAzurLaneListURL
	}

	var list azurLaneListResp
	if err := p.client.JSON(ctx, "azurlane.list", listURL, &list); err != nil {
		return nil, nil, err
	}
	if list.Code != 0 {
		return nil, nil, fmt.Errorf("azurlane list code %d: %s", list.Code, list.Message)
	}

	var candidates []model.CalendarEvent
	var notices []version.Notice
	for _, n := range list.Data {
		title := anntext.StripHTML(n.Title)
		annID := strconv.FormatInt(n.ID, 10)
		r := anntext.ExtractRange(n.Content)

		if azurLaneVersionFilter.Match(title) {
			notice, ok := noticeFromWindow(annID, title, "",
				timefmt.ToISOWithOffset(r.Start, azurLaneOffset),
				timefmt.ToISOWithOffset(r.End, azurLaneOffset))
			if ok {
				notices = append(notices, notice)
			}
		}
		if !azurLaneFilter.keep(title) {
			p.log.WithGame(model.GameAzurLane).WithField("title", title).Debug("filtered announcement")
			continue
		}
		if r.Start == "" || r.End == "" {
			p.log.WithGame(model.GameAzurLane).WithField("title", title).Debug("no extractable window")
			continue
		}

		candidates = append(candidates, model.CalendarEvent{
			ID:        annID,
			Title:     title,
			StartTime: timefmt.ToISOWithOffset(r.Start, azurLaneOffset),
			EndTime:   timefmt.ToISOWithOffset(r.End, azurLaneOffset),
			IsGacha:   isGacha(model.GameAzurLane, title),
			Banner:    n.Image,
			Content:   n.Content,
		})
	}

	return p.finalize(model.GameAzurLane, candidates), resolveVersion(model.GameAzurLane, notices, p.now()), nil
}
