package legacytest

// schema is the subset of the OJS 2.x schema read by the importer,
// expressed in SQLite types.
const schema = `
CREATE TABLE journals (
    journal_id     INTEGER PRIMARY KEY,
    path           TEXT NOT NULL,
    seq            REAL NOT NULL DEFAULT 0,
    primary_locale TEXT NOT NULL,
    enabled        INTEGER NOT NULL DEFAULT 1
);
CREATE TABLE journal_settings (
    journal_id    INTEGER NOT NULL,
    locale        TEXT NOT NULL DEFAULT '',
    setting_name  TEXT NOT NULL,
    setting_value TEXT,
    setting_type  TEXT NOT NULL DEFAULT 'string'
);
CREATE TABLE sections (
    section_id   INTEGER PRIMARY KEY,
    journal_id   INTEGER NOT NULL,
    seq          REAL NOT NULL DEFAULT 0,
    meta_indexed INTEGER NOT NULL DEFAULT 0,
    hide_title   INTEGER NOT NULL DEFAULT 0,
    hide_author  INTEGER NOT NULL DEFAULT 0
);
CREATE TABLE section_settings (
    section_id    INTEGER NOT NULL,
    locale        TEXT NOT NULL DEFAULT '',
    setting_name  TEXT NOT NULL,
    setting_value TEXT,
    setting_type  TEXT NOT NULL DEFAULT 'string'
);
CREATE TABLE issues (
    issue_id       INTEGER PRIMARY KEY,
    journal_id     INTEGER NOT NULL,
    volume         INTEGER,
    number         TEXT,
    year           INTEGER,
    published      INTEGER NOT NULL DEFAULT 0,
    current        INTEGER NOT NULL DEFAULT 0,
    date_published DATETIME
);
CREATE TABLE issue_settings (
    issue_id      INTEGER NOT NULL,
    locale        TEXT NOT NULL DEFAULT '',
    setting_name  TEXT NOT NULL,
    setting_value TEXT,
    setting_type  TEXT NOT NULL DEFAULT 'string'
);
CREATE TABLE custom_section_orders (
    issue_id   INTEGER NOT NULL,
    section_id INTEGER NOT NULL,
    seq        REAL NOT NULL DEFAULT 0
);
CREATE TABLE articles (
    article_id     INTEGER PRIMARY KEY,
    locale         TEXT,
    user_id        INTEGER,
    journal_id     INTEGER NOT NULL,
    section_id     INTEGER,
    language       TEXT,
    date_submitted DATETIME,
    status         INTEGER NOT NULL DEFAULT 1,
    pages          TEXT
);
CREATE TABLE article_settings (
    article_id    INTEGER NOT NULL,
    locale        TEXT NOT NULL DEFAULT '',
    setting_name  TEXT NOT NULL,
    setting_value TEXT,
    setting_type  TEXT NOT NULL DEFAULT 'string'
);
CREATE TABLE published_articles (
    published_article_id INTEGER PRIMARY KEY,
    article_id           INTEGER NOT NULL,
    issue_id             INTEGER NOT NULL,
    date_published       DATETIME,
    seq                  REAL NOT NULL DEFAULT 0
);
CREATE TABLE authors (
    author_id       INTEGER PRIMARY KEY,
    submission_id   INTEGER NOT NULL,
    primary_contact INTEGER NOT NULL DEFAULT 0,
    seq             REAL NOT NULL DEFAULT 0,
    first_name      TEXT NOT NULL DEFAULT '',
    middle_name     TEXT,
    last_name       TEXT NOT NULL DEFAULT '',
    country         TEXT,
    email           TEXT NOT NULL DEFAULT ''
);
CREATE TABLE edit_assignments (
    edit_id    INTEGER PRIMARY KEY,
    article_id INTEGER NOT NULL,
    editor_id  INTEGER NOT NULL
);
CREATE TABLE users (
    user_id         INTEGER PRIMARY KEY,
    username        TEXT NOT NULL,
    password        TEXT NOT NULL DEFAULT '',
    first_name      TEXT NOT NULL DEFAULT '',
    last_name       TEXT NOT NULL DEFAULT '',
    email           TEXT NOT NULL DEFAULT '',
    disabled        INTEGER NOT NULL DEFAULT 0,
    date_registered DATETIME
);
CREATE TABLE roles (
    journal_id INTEGER NOT NULL,
    user_id    INTEGER NOT NULL,
    role_id    INTEGER NOT NULL
);
`
