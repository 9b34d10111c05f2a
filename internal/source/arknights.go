package source

import (
	"context"
	"fmt"

	"actcal/internal/model"
	"actcal/internal/timefmt"
)

const (
	defaultArknightsListURL = "https://ak-webview.hypergryph.com/api/game/bulletinList?target=Android"

	arknightsOffset = "+08:00"
)

var arknightsFilter = titleFilter{
	allow: []string{"寻访", "中坚甄选"},
	deny:  []string{"维护", "问卷", "制作组通讯", "违规处理", "说明书"},
}

type arknightsBulletin struct {
	CID     string `json:"cid"`
	Title   string `json:"title"`
	Banner  string `json:"bannerUrl"`
	StartAt int64  `json:"startAt"`
	EndAt   int64  `json:"endAt"`
}

type arknightsListResp struct {
	Code int    `json:"code"`
	Msg  string `json:"msg"`
	Data struct {
		List []arknightsBulletin `json:"list"`
	} `json:"data"`
}

// fetchArknights reads the in-game bulletin list. Bulletins carry epoch
// second windows and no body text, so there is no enrichment step and no
// version notice to resolve.
func (p *Pipeline) fetchArknights(ctx context.Context) ([]model.CalendarEvent, *model.GameVersionInfo, error) {
	listURL := p.cfg.ArknightsListURL
	if listURL == "" {
		listURL = defaultArknightsListURL
	}

	var list arknightsListResp
	if err := p.client.JSON(ctx, "arknights.list", listURL, &list); err != nil {
		return nil, nil, err
	}
	if list.Code != 0 {
		return nil, nil, fmt.Errorf("arknights list code %d: %s", list.Code, list.Msg)
	}

	var candidates []model.CalendarEvent
	for _, b := range list.Data.List {
		if b.StartAt <= 0 || b.EndAt <= 0 {
			p.log.WithGame(model.GameArknights).WithField("title", b.Title).Debug("bulletin without window")
			continue
		}
		if !arknightsFilter.keep(b.Title) {
			p.log.WithGame(model.GameArknights).WithField("title", b.Title).Debug("filtered announcement")
			continue
		}
		start, err := timefmt.UnixSecondsToISO(b.StartAt, arknightsOffset)
		if err != nil {
			continue
		}
		end, err := timefmt.UnixSecondsToISO(b.EndAt, arknightsOffset)
		if err != nil {
			continue
		}
		candidates = append(candidates, model.CalendarEvent{
			ID:        eventID(b.CID, b.Title, start),
			Title:     b.Title,
			StartTime: start,
			EndTime:   end,
			IsGacha:   isGacha(model.GameArknights, b.Title),
			Banner:    b.Banner,
		})
	}

	return p.finalize(model.GameArknights, candidates), nil, nil
}
