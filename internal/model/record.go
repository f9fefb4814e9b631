package model

import "time"

// ProgressRecord 单个用户的进度聚合：用户行 + 房间进度 + 实验进度 + 连续学习日志
// 所有修改先在内存中完成，再由 ProgressRepository.SaveRecord 一次性写回
type ProgressRecord struct {
	User       *User
	Rooms      map[string]*RoomProgress
	Labs       map[string]*LabProgress
	Activities []StreakActivity

	persistedActivities int
	activitiesReplaced  bool
	dirtyRooms          map[string]bool
	dirtyLabs           map[string]bool
	completions         []ItemCompletion
}

// NewProgressRecord 用已加载的数据构造聚合
func NewProgressRecord(user *User, rooms []RoomProgress, labs []LabProgress, activities []StreakActivity) *ProgressRecord {
	rec := &ProgressRecord{
		User:                user,
		Rooms:               make(map[string]*RoomProgress, len(rooms)),
		Labs:                make(map[string]*LabProgress, len(labs)),
		Activities:          activities,
		persistedActivities: len(activities),
		dirtyRooms:          make(map[string]bool),
		dirtyLabs:           make(map[string]bool),
	}
	for i := range rooms {
		rec.Rooms[rooms[i].RoomID] = &rooms[i]
	}
	for i := range labs {
		rec.Labs[labs[i].LabID] = &labs[i]
	}
	return rec
}

func (r *ProgressRecord) Room(roomID string) *RoomProgress {
	return r.Rooms[roomID]
}

func (r *ProgressRecord) Lab(labID string) *LabProgress {
	return r.Labs[labID]
}

// MutableRoom 返回可修改的房间进度，不存在时创建（视为加入房间）
func (r *ProgressRecord) MutableRoom(roomID string) *RoomProgress {
	p, ok := r.Rooms[roomID]
	if !ok {
		p = &RoomProgress{UserID: r.User.ID, RoomID: roomID, Joined: true}
		r.Rooms[roomID] = p
	}
	r.dirtyRooms[roomID] = true
	return p
}

// MutableLab 返回可修改的实验进度，不存在时创建
func (r *ProgressRecord) MutableLab(labID string) *LabProgress {
	p, ok := r.Labs[labID]
	if !ok {
		p = &LabProgress{UserID: r.User.ID, LabID: labID}
		r.Labs[labID] = p
	}
	r.dirtyLabs[labID] = true
	return p
}

// AppendActivity 追加一条连续学习日志
func (r *ProgressRecord) AppendActivity(a StreakActivity) {
	a.UserID = r.User.ID
	r.Activities = append(r.Activities, a)
}

// ReplaceActivities 整体替换连续学习日志（批量重算使用）
func (r *ProgressRecord) ReplaceActivities(acts []StreakActivity) {
	out := make([]StreakActivity, len(acts))
	for i, a := range acts {
		a.ID = 0
		a.UserID = r.User.ID
		out[i] = a
	}
	r.Activities = out
	r.activitiesReplaced = true
}

// RecordCompletion 记录条目侧的完成信息（completedBy）
func (r *ProgressRecord) RecordCompletion(kind ItemKind, itemID string, at time.Time, score int) {
	r.completions = append(r.completions, ItemCompletion{
		ItemKind:    kind,
		ItemID:      itemID,
		UserID:      r.User.ID,
		CompletedAt: at,
		Score:       score,
	})
}

func (r *ProgressRecord) DirtyRooms() []*RoomProgress {
	out := make([]*RoomProgress, 0, len(r.dirtyRooms))
	for id := range r.dirtyRooms {
		out = append(out, r.Rooms[id])
	}
	return out
}

func (r *ProgressRecord) DirtyLabs() []*LabProgress {
	out := make([]*LabProgress, 0, len(r.dirtyLabs))
	for id := range r.dirtyLabs {
		out = append(out, r.Labs[id])
	}
	return out
}

// NewActivities 返回尚未持久化的日志；第二个返回值表示是否需要整体替换
func (r *ProgressRecord) NewActivities() ([]StreakActivity, bool) {
	if r.activitiesReplaced {
		return r.Activities, true
	}
	if r.persistedActivities >= len(r.Activities) {
		return nil, false
	}
	return r.Activities[r.persistedActivities:], false
}

// Dirty 是否存在待写回的子记录或日志
func (r *ProgressRecord) Dirty() bool {
	return len(r.dirtyRooms) > 0 || len(r.dirtyLabs) > 0 || len(r.completions) > 0 ||
		r.activitiesReplaced || r.persistedActivities < len(r.Activities)
}

func (r *ProgressRecord) PendingCompletions() []ItemCompletion {
	return r.completions
}

// MarkPersisted 写回成功后清空脏标记
func (r *ProgressRecord) MarkPersisted() {
	r.persistedActivities = len(r.Activities)
	r.activitiesReplaced = false
	r.dirtyRooms = make(map[string]bool)
	r.dirtyLabs = make(map[string]bool)
	r.completions = nil
}
