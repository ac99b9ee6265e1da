package mysql

import (
	"artshare-backend/internal/model"
	"artshare-backend/internal/util"
	"database/sql"
	"strings"

	"go.uber.org/zap"
)

type commentRepository struct {
	db *sql.DB
}

func NewCommentRepository(db *sql.DB) *commentRepository {
	return &commentRepository{db: db}
}

func (r *commentRepository) Create(comment *model.Comment) error {
	util.Logger.Info("开始创建评论",
		zap.Int("writer_id", comment.WriterID),
		zap.Int("article_id", comment.ArticleID),
		zap.Any("parent_id", comment.ParentID))

	query := `INSERT INTO comments
		(writer_id, article_id, image_id, parent_id, contents, x_position, y_position, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, NOW(), NOW())`

	result, err := r.db.Exec(query,
		comment.WriterID,
		comment.ArticleID,
		comment.ImageID,
		comment.ParentID,
		comment.Contents,
		comment.XPosition,
		comment.YPosition)

	if err != nil {
		util.Logger.Error("创建评论失败",
			zap.Error(err),
			zap.Any("comment", comment))
		return err
	}

	id, err := result.LastInsertId()
	if err != nil {
		util.Logger.Error("获取新评论ID失败", zap.Error(err))
		return err
	}
	comment.ID = int(id)

	util.Logger.Info("评论创建成功",
		zap.Int("comment_id", comment.ID),
		zap.Any("parent_id", comment.ParentID))
	return nil
}

// GetOnArticle 获取限定在某篇文章下的评论。未找到时返回 nil, nil
func (r *commentRepository) GetOnArticle(articleID, commentID int) (*model.Comment, error) {
	query := `
        SELECT id, writer_id, article_id, image_id, parent_id, contents,
               x_position, y_position, created_at, updated_at
        FROM comments
        WHERE id = ? AND article_id = ?`

	comment, err := r.scanOne(r.db.QueryRow(query, commentID, articleID))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return comment, nil
}

// ListByArticleID 按时间/ID升序分页取文章的评论，平铺返回（回复靠 parent_id 关联）
func (r *commentRepository) ListByArticleID(userID, articleID, page, pageSize int) ([]*model.Comment, int, error) {
	var total int
	err := r.db.QueryRow(`SELECT COUNT(*) FROM comments WHERE article_id = ?`, articleID).Scan(&total)
	if err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	comments, err := r.queryComments(userID, `
        WHERE c.article_id = ?
        ORDER BY c.created_at ASC, c.id ASC
        LIMIT ? OFFSET ?`, articleID, pageSize, offset)
	if err != nil {
		return nil, 0, err
	}

	return comments, total, nil
}

// Preview 取文章最早的几条评论，用于列表页的内嵌预览
func (r *commentRepository) Preview(userID, articleID, limit int) ([]*model.Comment, error) {
	return r.queryComments(userID, `
        WHERE c.article_id = ?
        ORDER BY c.created_at ASC, c.id ASC
        LIMIT ?`, articleID, limit)
}

// ToggleLike 评论点赞开关，唯一键 (user_id, comment_id)
func (r *commentRepository) ToggleLike(like *model.CommentLike) (bool, error) {
	tx, err := r.db.Begin()
	if err != nil {
		return false, err
	}
	defer tx.Rollback()

	query := `INSERT INTO comment_likes (user_id, comment_id, created_at) VALUES (?, ?, NOW())`
	_, err = tx.Exec(query, like.UserID, like.CommentID)
	if err != nil {
		if strings.Contains(err.Error(), "Duplicate entry") {
			_, err = tx.Exec(`DELETE FROM comment_likes WHERE user_id = ? AND comment_id = ?`, like.UserID, like.CommentID)
			if err != nil {
				return false, err
			}
			return false, tx.Commit()
		}
		util.Logger.Error("插入评论点赞记录失败", zap.Error(err))
		return false, err
	}

	return true, tx.Commit()
}

func (r *commentRepository) queryComments(userID int, tail string, args ...interface{}) ([]*model.Comment, error) {
	query := `
        SELECT c.id, c.writer_id, c.article_id, c.image_id, c.parent_id, c.contents,
               c.x_position, c.y_position, c.created_at, c.updated_at,
               u.nickname, u.profile_image,
               (SELECT COUNT(*) FROM comment_likes l WHERE l.comment_id = c.id) AS like_count,
               EXISTS(SELECT 1 FROM comment_likes l WHERE l.comment_id = c.id AND l.user_id = ?) AS my_pick
        FROM comments c
        LEFT JOIN users u ON c.writer_id = u.id
        ` + tail

	queryArgs := append([]interface{}{userID}, args...)
	rows, err := r.db.Query(query, queryArgs...)
	if err != nil {
		util.Logger.Error("查询评论失败", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var comments []*model.Comment
	for rows.Next() {
		var comment model.Comment
		var writer model.UserSummary
		var imageID, parentID sql.NullInt64
		var xPos, yPos sql.NullFloat64
		err := rows.Scan(
			&comment.ID, &comment.WriterID, &comment.ArticleID, &imageID, &parentID,
			&comment.Contents, &xPos, &yPos, &comment.CreatedAt, &comment.UpdatedAt,
			&writer.Nickname, &writer.ProfileImage,
			&comment.LikeCount, &comment.MyPick,
		)
		if err != nil {
			return nil, err
		}
		assignNullable(&comment, imageID, parentID, xPos, yPos)
		writer.ID = comment.WriterID
		comment.Writer = &writer
		comments = append(comments, &comment)
	}
	return comments, rows.Err()
}

func (r *commentRepository) scanOne(row *sql.Row) (*model.Comment, error) {
	var comment model.Comment
	var imageID, parentID sql.NullInt64
	var xPos, yPos sql.NullFloat64
	err := row.Scan(
		&comment.ID, &comment.WriterID, &comment.ArticleID, &imageID, &parentID,
		&comment.Contents, &xPos, &yPos, &comment.CreatedAt, &comment.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	assignNullable(&comment, imageID, parentID, xPos, yPos)
	return &comment, nil
}

func assignNullable(comment *model.Comment, imageID, parentID sql.NullInt64, xPos, yPos sql.NullFloat64) {
	if imageID.Valid {
		v := int(imageID.Int64)
		comment.ImageID = &v
	}
	if parentID.Valid {
		v := int(parentID.Int64)
		comment.ParentID = &v
	}
	if xPos.Valid {
		comment.XPosition = &xPos.Float64
	}
	if yPos.Valid {
		comment.YPosition = &yPos.Float64
	}
}
