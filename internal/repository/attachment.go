package repository

import (
	"github.com/samwilcox/nextboard-sub000/internal/cache"
	"github.com/samwilcox/nextboard-sub000/internal/model"
)

// AttachmentRepository 附件数据访问接口
type AttachmentRepository interface {
	// GetAttachmentByID 按 id 获取附件
	// forumID 由调用方注入，附件记录本身不带版块归属
	GetAttachmentByID(id, forumID int) (*model.Attachment, error)
}

type attachmentRepository struct {
	cache cache.Provider
}

// NewAttachmentRepository 创建 AttachmentRepository 实例
func NewAttachmentRepository(c cache.Provider) AttachmentRepository {
	return &attachmentRepository{cache: c}
}

func (r *attachmentRepository) GetAttachmentByID(id, forumID int) (*model.Attachment, error) {
	rec := findByID(r.cache.Get(cache.MemberAttachments), id)
	if rec == nil {
		return nil, nil
	}
	return &model.Attachment{
		ID:             id,
		MemberID:       rec.Int64("memberId"),
		FileName:       rec.Str("fileName"),
		FileSize:       rec.Int64("fileSize"),
		UploadedAt:     rec.Time("uploadedAt"),
		TotalDownloads: rec.Int("totalDownloads"),
		ForumID:        forumID,
	}, nil
}
