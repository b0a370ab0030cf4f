package repository

import (
	"github.com/samwilcox/nextboard-sub000/internal/cache"
	"github.com/samwilcox/nextboard-sub000/internal/core/settings"
	"github.com/samwilcox/nextboard-sub000/internal/model"
	"github.com/samwilcox/nextboard-sub000/internal/pkg/util"
)

// MemberRepository 成员数据访问接口
//
// 这是唯一超出平面映射的 repository：
// id 为 GuestID 或查无记录时走访客分支，完全由默认设置合成实体
type MemberRepository interface {
	GetMemberByID(id int64) (*model.Member, error)
}

type memberRepository struct {
	cache  cache.Provider
	groups GroupRepository
}

// NewMemberRepository 创建 MemberRepository 实例
func NewMemberRepository(c cache.Provider, groups GroupRepository) MemberRepository {
	return &memberRepository{cache: c, groups: groups}
}

// GetMemberByID 按 id 获取成员，无记录时返回访客实体而不是 nil
func (r *memberRepository) GetMemberByID(id int64) (*model.Member, error) {
	if id == model.GuestID {
		return r.populateGuestSettings(), nil
	}
	rec := r.loadMemberDataByID(id)
	if rec == nil {
		return r.populateGuestSettings(), nil
	}
	return r.buildMemberFromData(rec, id)
}

// populateGuestSettings 访客分支：不读任何缓存行，只读默认设置
func (r *memberRepository) populateGuestSettings() *model.Member {
	return &model.Member{
		ID:          model.GuestID,
		DisplayName: util.DefaultIfEmpty(settings.GetString("guestDisplayName"), "Guest"),
		LocaleID:    settings.GetInt("defaultLocaleId", 1),
		ThemeID:     settings.GetInt("defaultThemeId", 1),
		PerPage:     settings.GetInt("defaultPerPage", 20),
		IsGuest:     true,
	}
}

func (r *memberRepository) loadMemberDataByID(id int64) cache.Record {
	for _, rec := range r.cache.Get(cache.Members) {
		if rec.Int64("id") == id {
			return rec
		}
	}
	return nil
}

func (r *memberRepository) buildMemberFromData(rec cache.Record, id int64) (*model.Member, error) {
	member := &model.Member{
		ID:             id,
		Username:       rec.Str("username"),
		DisplayName:    rec.Str("displayName"),
		PasswordHash:   rec.Str("password"),
		LocaleID:       recIntDefault(rec, "localeId", settings.GetInt("defaultLocaleId", 1)),
		ThemeID:        recIntDefault(rec, "themeId", settings.GetInt("defaultThemeId", 1)),
		PerPage:        recIntDefault(rec, "perPage", settings.GetInt("defaultPerPage", 20)),
		PhotoType:      rec.Str("photoType"),
		PhotoID:        rec.Int("photoId"),
		CoverPhotoType: rec.Str("coverPhotoType"),
		CoverPhotoID:   rec.Int("coverPhotoId"),
		Joined:         rec.Time("joined"),
		TotalPosts:     rec.Int("totalPosts"),
		Reputation:     rec.Int("reputation"),
		Signature:      rec.Str("signature"),
		Anonymous:      rec.Bool("anonymous"),
	}
	member.DisplayName = util.DefaultIfEmpty(member.DisplayName, member.Username)

	primary, err := r.groups.GetGroupByID(rec.Int("primaryGroupId"))
	if err != nil {
		return nil, err
	}
	member.PrimaryGroup = primary

	secondaryIDs, err := recIntSlice(rec, cache.Members, "secondaryGroupIds", int(id))
	if err != nil {
		return nil, err
	}
	for _, gid := range secondaryIDs {
		group, err := r.groups.GetGroupByID(gid)
		if err != nil {
			return nil, err
		}
		if group != nil {
			member.SecondaryGroups = append(member.SecondaryGroups, group)
		}
	}

	return member, nil
}
