package sqlinline

// QSelectRecentPosts feeds the pattern analyzer: the newest records first,
// bounded by the caller's window.
const QSelectRecentPosts = `--sql 04845772-7f3b-4d5a-b3b0-4d0d4cc0c202
select platform, post_type, scheduled_time, content_length, hashtags, theme
from posts
where user_id = $1::uuid
order by scheduled_time desc
limit $2::int;
`
