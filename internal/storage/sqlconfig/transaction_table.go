package sqlconfig

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/gofrs/uuid/v5"
	"github.com/stephenafamo/bob"
	"github.com/stephenafamo/bob/dialect/psql"
	"github.com/stephenafamo/bob/dialect/psql/dialect"
	"github.com/stephenafamo/bob/dialect/psql/dm"
	"github.com/stephenafamo/bob/dialect/psql/im"
	"github.com/stephenafamo/bob/dialect/psql/sm"
	"github.com/stephenafamo/bob/dialect/psql/um"
	"github.com/stephenafamo/scan"
)

const transactionsTableName = "transactions"

var transactionColumns = []any{
	"id",
	"user_id",
	"amount",
	"type",
	"category",
	"description",
	"date",
	"is_regular",
	"regular_period",
	"recurring_start_date",
	"recurring_end_date",
	"payment_method",
	"created_at",
}

var _ ITransactionTable = (*TransactionsTable)(nil)

type TransactionsTable struct {
	exec bob.Executor
}

func NewTransactionsTable(exec bob.Executor) *TransactionsTable {
	return &TransactionsTable{exec: exec}
}

// FindByID retrieves a transaction owned by userID.
func (t *TransactionsTable) FindByID(ctx context.Context, userID, id uuid.UUID) (*Transaction, error) {
	q := psql.Select(
		sm.Columns(transactionColumns...),
		sm.From(transactionsTableName),
		sm.Where(ownedBy(userID, id)),
	)
	row, err := bob.One(ctx, t.exec, q, scan.StructMapper[Transaction]())
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &row, nil
}

// Insert creates a new transaction and returns its generated ID.
func (t *TransactionsTable) Insert(ctx context.Context, create *TransactionCreate) (uuid.UUID, error) {
	q := psql.Insert(
		im.Into(transactionsTableName,
			"user_id",
			"amount",
			"type",
			"category",
			"description",
			"date",
			"is_regular",
			"regular_period",
			"recurring_start_date",
			"recurring_end_date",
			"payment_method",
		),
		im.Values(psql.Arg(
			create.UserID,
			create.Amount,
			string(create.Type),
			create.Category,
			create.Description,
			create.Date,
			create.IsRegular,
			create.RegularPeriod,
			create.RecurringStartDate,
			create.RecurringEndDate,
			string(create.PaymentMethod),
		)),
		im.Returning("id"),
	)
	id, err := bob.One(ctx, t.exec, q, scan.SingleColumnMapper[uuid.UUID])
	if err != nil {
		return uuid.Nil, err
	}
	return id, nil
}

// List returns transactions matching the filter, fetching one row past Limit.
func (t *TransactionsTable) List(ctx context.Context, filter *TransactionFilter) ([]*Transaction, error) {
	queryMods := []bob.Mod[*dialect.SelectQuery]{
		sm.Columns(transactionColumns...),
		sm.From(transactionsTableName),
		sm.Where(filterExpression(filter)),
	}
	queryMods = append(queryMods, orderMods(filter)...)
	if filter.Limit > 0 {
		queryMods = append(queryMods, sm.Limit(filter.Limit+1))
	}
	if filter.Offset > 0 {
		queryMods = append(queryMods, sm.Offset(filter.Offset))
	}

	rows, err := bob.All(ctx, t.exec, psql.Select(queryMods...), scan.StructMapper[Transaction]())
	if err != nil {
		return nil, err
	}
	result := make([]*Transaction, len(rows))
	for i := range rows {
		result[i] = &rows[i]
	}
	return result, nil
}

// Aggregate sums amounts grouped by type, regularity, period and category.
// Sort and paging fields of the filter are ignored.
func (t *TransactionsTable) Aggregate(ctx context.Context, filter *TransactionFilter) ([]*TransactionTotal, error) {
	q := psql.Select(
		sm.Columns(
			"type",
			"is_regular",
			"regular_period",
			"category",
			psql.Raw("COALESCE(SUM(amount), 0) AS total"),
			psql.Raw("COUNT(*) AS count"),
		),
		sm.From(transactionsTableName),
		sm.Where(filterExpression(filter)),
		sm.GroupBy(psql.Quote("type")),
		sm.GroupBy(psql.Quote("is_regular")),
		sm.GroupBy(psql.Quote("regular_period")),
		sm.GroupBy(psql.Quote("category")),
	)
	rows, err := bob.All(ctx, t.exec, q, scan.StructMapper[TransactionTotal]())
	if err != nil {
		return nil, err
	}
	result := make([]*TransactionTotal, len(rows))
	for i := range rows {
		result[i] = &rows[i]
	}
	return result, nil
}

// Update overwrites a transaction owned by userID.
func (t *TransactionsTable) Update(ctx context.Context, userID, id uuid.UUID, update *TransactionUpdate) error {
	q := psql.Update(
		um.Table(transactionsTableName),
		um.SetCol("amount").ToArg(update.Amount),
		um.SetCol("type").ToArg(string(update.Type)),
		um.SetCol("category").ToArg(update.Category),
		um.SetCol("description").ToArg(update.Description),
		um.SetCol("date").ToArg(update.Date),
		um.SetCol("is_regular").ToArg(update.IsRegular),
		um.SetCol("regular_period").ToArg(update.RegularPeriod),
		um.SetCol("recurring_start_date").ToArg(update.RecurringStartDate),
		um.SetCol("recurring_end_date").ToArg(update.RecurringEndDate),
		um.SetCol("payment_method").ToArg(string(update.PaymentMethod)),
		um.Where(ownedBy(userID, id)),
	)
	res, err := bob.Exec(ctx, t.exec, q)
	if err != nil {
		return err
	}
	return requireAffected(res)
}

// Delete removes a transaction owned by userID. Its reminders go with it.
func (t *TransactionsTable) Delete(ctx context.Context, userID, id uuid.UUID) error {
	q := psql.Delete(
		dm.From(transactionsTableName),
		dm.Where(ownedBy(userID, id)),
	)
	res, err := bob.Exec(ctx, t.exec, q)
	if err != nil {
		return err
	}
	return requireAffected(res)
}

func ownedBy(userID, id uuid.UUID) bob.Expression {
	return psql.And(
		psql.Quote("id").EQ(psql.Arg(id)),
		psql.Quote("user_id").EQ(psql.Arg(userID)),
	)
}

func filterExpression(filter *TransactionFilter) bob.Expression {
	conds := []bob.Expression{
		psql.Quote("user_id").EQ(psql.Arg(filter.UserID)),
	}
	if filter.StartDate != nil {
		conds = append(conds, psql.Quote("date").GTE(psql.Arg(*filter.StartDate)))
	}
	if filter.EndDate != nil {
		conds = append(conds, psql.Quote("date").LTE(psql.Arg(*filter.EndDate)))
	}
	if filter.Type != nil {
		conds = append(conds, psql.Quote("type").EQ(psql.Arg(string(*filter.Type))))
	}
	if len(filter.Categories) > 0 {
		categories := make([]bob.Expression, len(filter.Categories))
		for i, c := range filter.Categories {
			categories[i] = psql.Arg(c)
		}
		conds = append(conds, psql.Quote("category").In(categories...))
	}
	if filter.IsRegular != nil {
		conds = append(conds, psql.Quote("is_regular").EQ(psql.Arg(*filter.IsRegular)))
	}
	if filter.RegularPeriod != nil {
		conds = append(conds, psql.Quote("regular_period").EQ(psql.Arg(string(*filter.RegularPeriod))))
	}
	if filter.Search != "" {
		conds = append(conds, psql.Raw("category ILIKE ?", "%"+likeEscaper.Replace(filter.Search)+"%"))
	}
	return psql.And(conds...)
}

// likeEscaper makes search text match literally under ILIKE's default backslash escape.
var likeEscaper = strings.NewReplacer(`\`, `\\`, "%", `\%`, "_", `\_`)

func orderMods(filter *TransactionFilter) []bob.Mod[*dialect.SelectQuery] {
	column := SortByDate
	switch filter.SortBy {
	case SortByAmount, SortByCreatedAt:
		column = filter.SortBy
	}

	primary := sm.OrderBy(psql.Quote(string(column)))
	tieBreak := sm.OrderBy(psql.Quote("created_at"))
	id := sm.OrderBy(psql.Quote("id"))
	if filter.SortOrder == SortAsc {
		return []bob.Mod[*dialect.SelectQuery]{primary.Asc(), tieBreak.Asc(), id.Asc()}
	}
	return []bob.Mod[*dialect.SelectQuery]{primary.Desc(), tieBreak.Desc(), id.Desc()}
}

func requireAffected(res sql.Result) error {
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}
