package db

// SchemaSQL contains the database schema initialization SQL.
const SchemaSQL = `
    -- ==========================================================================
    -- NOTE TABLE (one record per vault markdown file, id = vault-relative path)
    -- ==========================================================================
    DEFINE TABLE IF NOT EXISTS note SCHEMAFULL;
    DEFINE FIELD IF NOT EXISTS path ON note TYPE string;
    DEFINE FIELD IF NOT EXISTS title ON note TYPE string;
    DEFINE FIELD IF NOT EXISTS hash ON note TYPE string;
    DEFINE FIELD IF NOT EXISTS mtime ON note TYPE datetime;
    DEFINE FIELD IF NOT EXISTS created ON note TYPE datetime DEFAULT time::now();
    DEFINE FIELD IF NOT EXISTS updated ON note TYPE datetime DEFAULT time::now();

    DEFINE INDEX IF NOT EXISTS note_path ON note FIELDS path UNIQUE;

    -- ==========================================================================
    -- LINKED RELATION (directed wiki-link edges between notes)
    -- ==========================================================================
    -- One edge per resolved [[wiki-link]]; the unique key collapses repeated
    -- RELATE calls for the same pair into a single edge.
    DEFINE TABLE IF NOT EXISTS linked TYPE RELATION IN note OUT note SCHEMAFULL;
    DEFINE FIELD IF NOT EXISTS created ON linked TYPE datetime DEFAULT time::now();
    DEFINE FIELD IF NOT EXISTS unique_key ON linked VALUE <string>string::concat(<string>in, "->", <string>out);
    DEFINE INDEX IF NOT EXISTS unique_link ON linked FIELDS unique_key UNIQUE;

    -- ==========================================================================
    -- HISTORY TABLE (pair outcomes, pruned to the newest 200 on append)
    -- ==========================================================================
    DEFINE TABLE IF NOT EXISTS history SCHEMAFULL;
    DEFINE FIELD IF NOT EXISTS note_a ON history TYPE string;
    DEFINE FIELD IF NOT EXISTS note_b ON history TYPE string;
    DEFINE FIELD IF NOT EXISTS outcome ON history TYPE string ASSERT $value IN ["sparked", "skipped"];
    DEFINE FIELD IF NOT EXISTS spark_path ON history TYPE option<string>;
    DEFINE FIELD IF NOT EXISTS created ON history TYPE datetime DEFAULT time::now();

    DEFINE INDEX IF NOT EXISTS history_created ON history FIELDS created;

    -- ==========================================================================
    -- SETTINGS TABLE (single record settings:flint)
    -- ==========================================================================
    DEFINE TABLE IF NOT EXISTS settings SCHEMAFULL;
    DEFINE FIELD IF NOT EXISTS weigh_orphans ON settings TYPE bool DEFAULT true;
    DEFINE FIELD IF NOT EXISTS spark_dir ON settings TYPE string DEFAULT "sparks";
    DEFINE FIELD IF NOT EXISTS collection_note ON settings TYPE option<string>;
    DEFINE FIELD IF NOT EXISTS muse_enabled ON settings TYPE bool DEFAULT false;
`
