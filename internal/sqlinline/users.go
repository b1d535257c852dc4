package sqlinline

const QSelectUserByID = `--sql aaad8d66-9ed9-457b-8d60-ab7550a1a35a
select id, email, name, plan, locale, created_at, updated_at
from users
where id = $1::uuid
limit 1;
`

const QSelectProfile = `--sql e35cea2e-dda3-4b98-b6c3-aa13e3a5e4ec
select u.id,
       coalesce(p.platforms, '{}'::text[]),
       coalesce(p.themes, '{}'::text[]),
       coalesce(p.posts_per_week, 0),
       u.plan,
       coalesce(p.business_category, '')
from users u
left join profiles p on p.user_id = u.id
where u.id = $1::uuid
limit 1;
`

const QSelectUserPlanByEmail = `--sql 2d7c2310-6c72-41c6-b3d1-fb75cab3a5b9
select id, email, plan
from users
where lower(email) = lower($1::text)
limit 1;
`

const QUpdateUserPlan = `--sql a11f5682-d49e-4715-88ee-6f5d4b4b3ebe
update users
set plan = $2::text,
    updated_at = now()
where id = $1::uuid
returning id, email, plan;
`
