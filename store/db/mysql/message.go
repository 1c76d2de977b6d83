package mysql

import (
	"context"
	"fmt"
	"strings"

	"github.com/mentio/mentio/store"
)

func (d *DB) CreateMessage(ctx context.Context, create *store.CreateMessage) (*store.Message, error) {
	stmt := "INSERT INTO `message` (`conversation_id`, `creator_id`, `kind`, `content`) VALUES (?, ?, ?, ?)"
	result, err := d.db.ExecContext(ctx, stmt, create.ConversationID, create.CreatorID, int32(create.Kind), create.Content)
	if err != nil {
		return nil, err
	}
	rawID, err := result.LastInsertId()
	if err != nil {
		return nil, err
	}

	m := &store.Message{
		ID:             int32(rawID),
		ConversationID: create.ConversationID,
		CreatorID:      create.CreatorID,
		Kind:           create.Kind,
		Content:        create.Content,
	}
	if err := d.db.QueryRowContext(ctx, "SELECT UNIX_TIMESTAMP(`created_ts`) FROM `message` WHERE `id` = ?", m.ID).Scan(&m.CreatedTs); err != nil {
		return nil, err
	}
	return m, nil
}

func (d *DB) ListMessages(ctx context.Context, find *store.FindMessage) ([]*store.Message, error) {
	where, args := []string{"1 = 1"}, []any{}
	if v := find.ConversationID; v != nil {
		where, args = append(where, "`conversation_id` = ?"), append(args, *v)
	}
	if v := find.CreatorID; v != nil {
		where, args = append(where, "`creator_id` = ?"), append(args, *v)
	}
	if v := find.BeforeID; v != nil {
		where, args = append(where, "`id` < ?"), append(args, *v)
	}
	order := "ASC"
	if find.OrderDesc {
		order = "DESC"
	}
	query := fmt.Sprintf(
		"SELECT `id`, `conversation_id`, `creator_id`, `kind`, `content`, UNIX_TIMESTAMP(`created_ts`) FROM `message` WHERE %s ORDER BY `id` %s",
		strings.Join(where, " AND "), order,
	)
	if v := find.Limit; v != nil {
		query = fmt.Sprintf("%s LIMIT %d", query, *v)
	}
	rows, err := d.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var list []*store.Message
	for rows.Next() {
		m := &store.Message{}
		if err := rows.Scan(&m.ID, &m.ConversationID, &m.CreatorID, &m.Kind, &m.Content, &m.CreatedTs); err != nil {
			return nil, err
		}
		list = append(list, m)
	}
	return list, rows.Err()
}

func (d *DB) UpdateMessageContent(ctx context.Context, id int32, content string) error {
	_, err := d.db.ExecContext(ctx, "UPDATE `message` SET `content` = ? WHERE `id` = ?", content, id)
	return err
}

func (d *DB) CountMessages(ctx context.Context, count *store.CountMessage) (int, error) {
	where, args := []string{"1 = 1"}, []any{}
	if v := count.CreatorID; v != nil {
		where, args = append(where, "`creator_id` = ?"), append(args, *v)
	}
	if v := count.Kind; v != nil {
		where, args = append(where, "`kind` = ?"), append(args, int32(*v))
	}
	if v := count.CreatedAfter; v != nil {
		where, args = append(where, "`created_ts` >= FROM_UNIXTIME(?)"), append(args, *v)
	}
	if v := count.CreatedBefore; v != nil {
		where, args = append(where, "`created_ts` < FROM_UNIXTIME(?)"), append(args, *v)
	}
	query := fmt.Sprintf("SELECT COUNT(*) FROM `message` WHERE %s", strings.Join(where, " AND "))
	var n int
	if err := d.db.QueryRowContext(ctx, query, args...).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}
