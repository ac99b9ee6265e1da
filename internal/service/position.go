package service

import (
	"artshare-backend/internal/errors"
	"artshare-backend/internal/model"
)

// AssignImagePositions 校验并补全图片位置。
// 全部缺省时按输入顺序补 0..n-1；否则做唯一性检查，缺省视作同一个值，
// 显式位置互不相同则原样放行（不要求连续或从0开始）。
func AssignImagePositions(images []model.CreateImage) ([]model.CreateImage, error) {
	if len(images) == 0 {
		return images, nil
	}

	allAbsent := true
	for _, img := range images {
		if img.Position != nil {
			allAbsent = false
			break
		}
	}

	if allAbsent {
		assigned := make([]model.CreateImage, len(images))
		for i, img := range images {
			p := i
			img.Position = &p
			assigned[i] = img
		}
		return assigned, nil
	}

	seen := make(map[int]bool, len(images))
	absentSeen := false
	for _, img := range images {
		if img.Position == nil {
			if absentSeen {
				return nil, errors.New(errors.ErrSamePosition, "duplicate image position")
			}
			absentSeen = true
			continue
		}
		if seen[*img.Position] {
			return nil, errors.New(errors.ErrSamePosition, "duplicate image position")
		}
		seen[*img.Position] = true
	}

	return images, nil
}
