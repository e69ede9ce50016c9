package sqlinline

// Postgres

const QCreateLedgerState = `--sql aed96117-88d4-4a8d-943d-3b543e9b0458
create table if not exists ledger_state (
    key text primary key,
    value jsonb not null,
    updated_at timestamptz not null default now()
);
`

const QLockLedger = `--sql 86677ee9-65b3-4ec8-9b58-4f053a3d54ec
select pg_advisory_xact_lock($1::bigint);
`

const QGetLedgerState = `--sql 191b99b7-3312-42d8-baf8-59a3b49bc1e9
select value::text
from ledger_state
where key = $1::text;
`

const QPutLedgerState = `--sql a869f9b5-d031-4448-a8ae-e9632f381863
insert into ledger_state(key, value, updated_at)
values ($1::text, $2::jsonb, now())
on conflict (key) do update set
    value = excluded.value,
    updated_at = excluded.updated_at;
`

// SQLite

const QCreateLedgerStateSQLite = `--sql 81f4bc56-75ef-4821-beac-29be1d5686e2
create table if not exists ledger_state (
    key text primary key,
    value text not null,
    updated_at integer not null
);
`

const QGetLedgerStateSQLite = `--sql b072d628-14d1-4f98-ae8e-7cb5b0927fa1
select value
from ledger_state
where key = ?;
`

const QPutLedgerStateSQLite = `--sql 46b6e6fb-11ec-4a2f-a948-12d02c211925
insert into ledger_state(key, value, updated_at)
values (?, ?, ?)
on conflict (key) do update set
    value = excluded.value,
    updated_at = excluded.updated_at;
`
