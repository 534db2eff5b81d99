package sqlconfig

import (
	"context"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/stephenafamo/bob"
	"github.com/stephenafamo/bob/dialect/psql"
	"github.com/stephenafamo/bob/dialect/psql/dialect"
	"github.com/stephenafamo/bob/dialect/psql/im"
	"github.com/stephenafamo/bob/dialect/psql/sm"
	"github.com/stephenafamo/bob/dialect/psql/um"
	"github.com/stephenafamo/scan"
)

const remindersTableName = "reminders"

var reminderColumns = []any{
	"reminders.id",
	"reminders.user_id",
	"reminders.transaction_id",
	"reminders.reminder_date",
	"reminders.push_enabled",
	"reminders.email_enabled",
	"reminders.notified_at",
	"reminders.created_at",
	"transactions.amount",
	"transactions.type",
	"transactions.category",
	psql.Raw("transactions.date AS transaction_date"),
}

var _ IReminderTable = (*RemindersTable)(nil)

type RemindersTable struct {
	exec bob.Executor
}

func NewRemindersTable(exec bob.Executor) *RemindersTable {
	return &RemindersTable{exec: exec}
}

func (r *RemindersTable) Insert(ctx context.Context, create *ReminderCreate) (uuid.UUID, error) {
	q := psql.Insert(
		im.Into(remindersTableName, "user_id", "transaction_id", "reminder_date", "push_enabled", "email_enabled"),
		im.Values(psql.Arg(create.UserID, create.TransactionID, create.ReminderDate, create.PushEnabled, create.EmailEnabled)),
		im.Returning("id"),
	)
	id, err := bob.One(ctx, r.exec, q, scan.SingleColumnMapper[uuid.UUID])
	if err != nil {
		return uuid.Nil, err
	}
	return id, nil
}

func (r *RemindersTable) ListUpcoming(ctx context.Context, userID uuid.UUID, from, to time.Time) ([]*Reminder, error) {
	return r.list(ctx,
		sm.Where(psql.And(
			psql.Quote("reminders", "user_id").EQ(psql.Arg(userID)),
			psql.Quote("reminders", "reminder_date").GTE(psql.Arg(from)),
			psql.Quote("reminders", "reminder_date").LTE(psql.Arg(to)),
		)),
	)
}

func (r *RemindersTable) ListDue(ctx context.Context, asOf time.Time, limit int) ([]*Reminder, error) {
	queryMods := []bob.Mod[*dialect.SelectQuery]{
		sm.Where(psql.And(
			psql.Quote("reminders", "reminder_date").LTE(psql.Arg(asOf)),
			psql.Raw("reminders.notified_at IS NULL"),
		)),
	}
	if limit > 0 {
		queryMods = append(queryMods, sm.Limit(limit))
	}
	return r.list(ctx, queryMods...)
}

func (r *RemindersTable) MarkNotified(ctx context.Context, id uuid.UUID, at time.Time) error {
	q := psql.Update(
		um.Table(remindersTableName),
		um.SetCol("notified_at").ToArg(at),
		um.Where(psql.Quote("id").EQ(psql.Arg(id))),
	)
	res, err := bob.Exec(ctx, r.exec, q)
	if err != nil {
		return err
	}
	return requireAffected(res)
}

func (r *RemindersTable) list(ctx context.Context, extra ...bob.Mod[*dialect.SelectQuery]) ([]*Reminder, error) {
	queryMods := []bob.Mod[*dialect.SelectQuery]{
		sm.Columns(reminderColumns...),
		sm.From(remindersTableName),
		sm.InnerJoin(transactionsTableName).On(
			psql.Quote("transactions", "id").EQ(psql.Quote("reminders", "transaction_id")),
		),
		sm.OrderBy(psql.Quote("reminders", "reminder_date")).Asc(),
		sm.OrderBy(psql.Quote("reminders", "id")).Asc(),
	}
	queryMods = append(queryMods, extra...)

	rows, err := bob.All(ctx, r.exec, psql.Select(queryMods...), scan.StructMapper[Reminder]())
	if err != nil {
		return nil, err
	}
	result := make([]*Reminder, len(rows))
	for i := range rows {
		result[i] = &rows[i]
	}
	return result, nil
}
