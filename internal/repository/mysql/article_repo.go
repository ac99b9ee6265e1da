package mysql

import (
	"artshare-backend/internal/errors"
	"artshare-backend/internal/model"
	"artshare-backend/internal/util"
	"database/sql"
	"strings"

	"go.uber.org/zap"
)

type articleRepository struct {
	db *sql.DB
}

func NewArticleRepository(db *sql.DB) *articleRepository {
	return &articleRepository{db: db}
}

// Create 在一个事务中插入文章和图片
func (r *articleRepository) Create(article *model.Article, images []model.CreateImage) error {
	tx, err := r.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	// 插入文章
	query := `INSERT INTO articles (writer_id, type, contents, report_count, created_at, updated_at)
              VALUES (?, ?, ?, 0, NOW(), NOW())`
	result, err := tx.Exec(query, article.WriterID, article.Type, article.Contents)
	if err != nil {
		util.Logger.Error("创建文章失败", zap.Error(err))
		return err
	}

	articleID, err := result.LastInsertId()
	if err != nil {
		util.Logger.Error("获取新文章ID失败", zap.Error(err))
		return err
	}
	article.ID = int(articleID)

	// 插入图片
	if len(images) > 0 {
		query = `INSERT INTO article_images (article_id, url, position, created_at) VALUES (?, ?, ?, NOW())`
		for _, img := range images {
			_, err = tx.Exec(query, articleID, img.URL, img.Position)
			if err != nil {
				if strings.Contains(err.Error(), "Duplicate entry") {
					return errors.New(errors.ErrSamePosition, "duplicate image position")
				}
				util.Logger.Error("插入文章图片失败", zap.Error(err))
				return err
			}
		}
	}

	if err := tx.Commit(); err != nil {
		util.Logger.Error("提交事务失败", zap.Error(err))
		return err
	}

	util.Logger.Info("文章创建成功", zap.Int("article_id", article.ID))
	return nil
}

// GetByID 获取文章及作者、点赞数、评论数。未找到时返回 nil, nil
func (r *articleRepository) GetByID(id int) (*model.Article, error) {
	query := `
        SELECT a.id, a.writer_id, a.type, a.contents, a.report_count, a.created_at, a.updated_at,
               u.nickname, u.profile_image
        FROM articles a
        LEFT JOIN users u ON a.writer_id = u.id
        WHERE a.id = ?`

	var article model.Article
	var writer model.UserSummary
	err := r.db.QueryRow(query, id).Scan(
		&article.ID, &article.WriterID, &article.Type, &article.Contents,
		&article.ReportCount, &article.CreatedAt, &article.UpdatedAt,
		&writer.Nickname, &writer.ProfileImage,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	writer.ID = article.WriterID
	article.Writer = &writer

	// 获取点赞数
	err = r.db.QueryRow(`SELECT COUNT(*) FROM article_likes WHERE article_id = ?`, id).Scan(&article.LikeCount)
	if err != nil {
		return nil, err
	}

	// 获取评论数
	err = r.db.QueryRow(`SELECT COUNT(*) FROM comments WHERE article_id = ?`, id).Scan(&article.CommentCount)
	if err != nil {
		return nil, err
	}

	return &article, nil
}

// Update 更新文章内容；replaceImages 为真时整组替换图片
func (r *articleRepository) Update(article *model.Article, images []model.CreateImage, replaceImages bool) error {
	tx, err := r.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	query := `UPDATE articles SET contents = ?, updated_at = NOW() WHERE id = ?`
	_, err = tx.Exec(query, article.Contents, article.ID)
	if err != nil {
		util.Logger.Error("更新文章失败", zap.Error(err), zap.Int("article_id", article.ID))
		return err
	}

	if replaceImages {
		_, err = tx.Exec(`DELETE FROM article_images WHERE article_id = ?`, article.ID)
		if err != nil {
			util.Logger.Error("删除旧图片失败", zap.Error(err), zap.Int("article_id", article.ID))
			return err
		}

		query = `INSERT INTO article_images (article_id, url, position, created_at) VALUES (?, ?, ?, NOW())`
		for _, img := range images {
			_, err = tx.Exec(query, article.ID, img.URL, img.Position)
			if err != nil {
				if strings.Contains(err.Error(), "Duplicate entry") {
					return errors.New(errors.ErrSamePosition, "duplicate image position")
				}
				util.Logger.Error("插入文章图片失败", zap.Error(err))
				return err
			}
		}
	}

	return tx.Commit()
}

// List 按过滤条件分页查询未被下架的文章
func (r *articleRepository) List(userID int, filter model.ArticleFilter, page, pageSize, suppressThreshold int) ([]*model.Article, int, error) {
	where := []string{"a.report_count < ?"}
	args := []interface{}{suppressThreshold}

	if filter.NoReplyOnly {
		where = append(where, "a.type = 'question'")
		where = append(where, "NOT EXISTS (SELECT 1 FROM comments c WHERE c.article_id = a.id)")
	}
	if filter.SearchKeyword != "" {
		// 区分大小写的子串匹配
		where = append(where, "a.contents LIKE BINARY CONCAT('%', ?, '%')")
		args = append(args, filter.SearchKeyword)
	}
	whereClause := "WHERE " + strings.Join(where, " AND ")

	// 总数与分页无关
	var total int
	countQuery := `SELECT COUNT(*) FROM articles a ` + whereClause
	err := r.db.QueryRow(countQuery, args...).Scan(&total)
	if err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	query := `
        SELECT a.id, a.writer_id, a.type, a.contents, a.report_count, a.created_at, a.updated_at,
               u.nickname, u.profile_image,
               (SELECT COUNT(*) FROM article_likes l WHERE l.article_id = a.id) AS like_count,
               (SELECT COUNT(*) FROM comments c WHERE c.article_id = a.id) AS comment_count,
               EXISTS(SELECT 1 FROM article_likes l WHERE l.article_id = a.id AND l.user_id = ?) AS my_pick,
               (SELECT i.url FROM article_images i WHERE i.article_id = a.id
                ORDER BY i.position IS NULL, i.position ASC, i.id ASC LIMIT 1) AS thumbnail
        FROM articles a
        LEFT JOIN users u ON a.writer_id = u.id
        ` + whereClause + `
        ORDER BY a.created_at DESC, a.id DESC
        LIMIT ? OFFSET ?`

	queryArgs := append([]interface{}{userID}, args...)
	queryArgs = append(queryArgs, pageSize, offset)

	rows, err := r.db.Query(query, queryArgs...)
	if err != nil {
		util.Logger.Error("查询文章列表失败", zap.Error(err))
		return nil, 0, err
	}
	defer rows.Close()

	var articles []*model.Article
	for rows.Next() {
		var article model.Article
		var writer model.UserSummary
		var thumbnail sql.NullString
		err := rows.Scan(
			&article.ID, &article.WriterID, &article.Type, &article.Contents,
			&article.ReportCount, &article.CreatedAt, &article.UpdatedAt,
			&writer.Nickname, &writer.ProfileImage,
			&article.LikeCount, &article.CommentCount, &article.MyPick, &thumbnail,
		)
		if err != nil {
			return nil, 0, err
		}
		writer.ID = article.WriterID
		article.Writer = &writer
		if thumbnail.Valid {
			article.Thumbnail = &thumbnail.String
		}
		article.IsMine = article.WriterID == userID
		articles = append(articles, &article)
	}
	if err = rows.Err(); err != nil {
		return nil, 0, err
	}

	return articles, total, nil
}

// GetImages 按位置升序取文章的全部图片，NULL 位置排在最后
func (r *articleRepository) GetImages(articleID int) ([]*model.Image, error) {
	query := `SELECT id, article_id, url, position, created_at
              FROM article_images
              WHERE article_id = ?
              ORDER BY position IS NULL, position ASC, id ASC`

	rows, err := r.db.Query(query, articleID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var images []*model.Image
	for rows.Next() {
		var img model.Image
		var pos sql.NullInt64
		if err := rows.Scan(&img.ID, &img.ArticleID, &img.URL, &pos, &img.CreatedAt); err != nil {
			return nil, err
		}
		if pos.Valid {
			p := int(pos.Int64)
			img.Position = &p
		}
		images = append(images, &img)
	}
	return images, rows.Err()
}

// GetImage 取属于指定文章的一张图片。未找到时返回 nil, nil
func (r *articleRepository) GetImage(articleID, imageID int) (*model.Image, error) {
	query := `SELECT id, article_id, url, position, created_at
              FROM article_images
              WHERE id = ? AND article_id = ?`

	var img model.Image
	var pos sql.NullInt64
	err := r.db.QueryRow(query, imageID, articleID).Scan(
		&img.ID, &img.ArticleID, &img.URL, &pos, &img.CreatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	if pos.Valid {
		p := int(pos.Int64)
		img.Position = &p
	}
	return &img, nil
}

// ToggleLike 点赞开关。唯一键 (user_id, article_id) 保证并发下的原子翻转：
// 插入成功则为点赞，撞唯一键则删除记录取消点赞
func (r *articleRepository) ToggleLike(like *model.ArticleLike) (bool, error) {
	tx, err := r.db.Begin()
	if err != nil {
		return false, err
	}
	defer tx.Rollback()

	query := `INSERT INTO article_likes (user_id, article_id, created_at) VALUES (?, ?, NOW())`
	_, err = tx.Exec(query, like.UserID, like.ArticleID)
	if err != nil {
		if strings.Contains(err.Error(), "Duplicate entry") {
			_, err = tx.Exec(`DELETE FROM article_likes WHERE user_id = ? AND article_id = ?`, like.UserID, like.ArticleID)
			if err != nil {
				return false, err
			}
			return false, tx.Commit()
		}
		util.Logger.Error("插入点赞记录失败", zap.Error(err))
		return false, err
	}

	return true, tx.Commit()
}

func (r *articleRepository) IsLikedByUser(articleID, userID int) (bool, error) {
	var exists bool
	err := r.db.QueryRow(`
        SELECT EXISTS(
            SELECT 1 FROM article_likes
            WHERE article_id = ? AND user_id = ?
        )
    `, articleID, userID).Scan(&exists)
	return exists, err
}

// CreateReport 插入举报记录并在同一事务里累加 report_count，返回新的计数。
// 唯一键 (user_id, article_id) 挡住重复举报
func (r *articleRepository) CreateReport(report *model.ArticleReport) (int, error) {
	tx, err := r.db.Begin()
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	query := `INSERT INTO article_reports (user_id, article_id, reason, created_at) VALUES (?, ?, ?, NOW())`
	result, err := tx.Exec(query, report.UserID, report.ArticleID, report.Reason)
	if err != nil {
		if strings.Contains(err.Error(), "Duplicate entry") {
			return 0, errors.New(errors.ErrAlreadyReported, "article already reported by this user")
		}
		util.Logger.Error("插入举报记录失败", zap.Error(err))
		return 0, err
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, err
	}
	report.ID = int(id)

	_, err = tx.Exec(`UPDATE articles SET report_count = report_count + 1 WHERE id = ?`, report.ArticleID)
	if err != nil {
		util.Logger.Error("累加举报计数失败", zap.Error(err), zap.Int("article_id", report.ArticleID))
		return 0, err
	}

	var count int
	err = tx.QueryRow(`SELECT report_count FROM articles WHERE id = ?`, report.ArticleID).Scan(&count)
	if err != nil {
		return 0, err
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}

	util.Logger.Info("举报记录创建成功",
		zap.Int("article_id", report.ArticleID),
		zap.Int("report_count", count))
	return count, nil
}
