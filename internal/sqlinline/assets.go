package sqlinline

const QInsertAsset = `--sql 4addb5ca-f02b-47c8-8151-ec1b64fedf8e
insert into assets (id, user_id, storage_key, mime_type, bytes, created_at)
values ($1::uuid, $2::uuid, $3::text, $4::text, $5::bigint, now())
returning id;
`
