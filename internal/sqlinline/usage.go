package sqlinline

// QUpsertUsageLedger returns the user's ledger row, creating a zeroed one for
// the current period when none exists. The no-op conflict update makes the
// RETURNING clause fire on both paths.
const QUpsertUsageLedger = `--sql 9c95d57d-e5d8-4e2b-923b-971624943aed
insert into usage_ledgers (user_id, tasks_used, images_used, period_start, updated_at)
values ($1::uuid, 0, 0, $2::date, now())
on conflict (user_id) do update set user_id = excluded.user_id
returning tasks_used, images_used, period_start, updated_at;
`

const QResetUsageLedger = `--sql a88f7afa-3686-41fb-88c8-7dae1a584a0e
update usage_ledgers
set tasks_used = 0,
    images_used = 0,
    period_start = $2::date,
    updated_at = now()
where user_id = $1::uuid
returning tasks_used, images_used, period_start, updated_at;
`

const QIncrementTaskUsage = `--sql ece3a978-eeab-44ec-bc13-c920053a7f0a
update usage_ledgers
set tasks_used = tasks_used + 1,
    updated_at = now()
where user_id = $1::uuid;
`

const QIncrementImageUsage = `--sql cd428476-738e-4e40-b130-b288f408e15c
update usage_ledgers
set images_used = images_used + 1,
    updated_at = now()
where user_id = $1::uuid;
`

// The conditional increments implement increment-if-below-limit as a single
// statement; $2 = -1 disables the cap. No row returned means the counter was
// already at the limit.
const QIncrementTaskIfBelow = `--sql d978fe13-2869-4117-b276-bfde705e7774
update usage_ledgers
set tasks_used = tasks_used + 1,
    updated_at = now()
where user_id = $1::uuid
  and ($2::int = -1 or tasks_used < $2::int)
returning tasks_used;
`

const QIncrementImageIfBelow = `--sql 2aee29d6-b957-4a9d-a716-98f1d74519a3
update usage_ledgers
set images_used = images_used + 1,
    updated_at = now()
where user_id = $1::uuid
  and ($2::int = -1 or images_used < $2::int)
returning images_used;
`

const QSelectUsageCounters = `--sql 3a6697e1-633e-4f7f-acd9-29fe7e129d46
select tasks_used, images_used
from usage_ledgers
where user_id = $1::uuid;
`
