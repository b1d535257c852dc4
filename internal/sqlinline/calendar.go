package sqlinline

const QInsertCalendarEntry = `--sql dc5f6eb9-e171-48a0-877c-496681effda2
insert into calendar_entries (id, user_id, entry_date, slot_time, platform, topic, post_type, content_type, status, campaign, created_at)
values ($1::uuid, $2::uuid, $3::date, $4::text, $5::text, $6::text, $7::text, $8::text, $9::text, $10::text, now());
`

const QSelectUpcomingEntries = `--sql 730376b6-0e8c-4bff-86e4-ac70357e54f0
select id, entry_date, slot_time, platform, topic, post_type, content_type, status, campaign, created_at
from calendar_entries
where user_id = $1::uuid
  and entry_date >= $2::date
order by entry_date, slot_time
limit $3::int;
`

// QMarkEntriesPublished flips scheduled entries whose date and slot have
// passed. slot_time is a zero-padded HH:MM label, so the lexicographic
// comparison matches chronological order.
const QMarkEntriesPublished = `--sql 740ec317-e0bf-48f0-b2ab-fef1fcfb4ecf
update calendar_entries
set status = 'published'
where status = 'scheduled'
  and (entry_date < $1::date or (entry_date = $1::date and slot_time <= $2::text));
`
