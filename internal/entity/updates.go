package entity

// UserUpdates 用户更新字段
type UserUpdates struct {
	Name       *string
	Avatar     *string
	BloodGroup *string
	District   *string
	Upazila    *string
	Role       *Role
	Status     *UserStatus
}

// ToMap 转换为 GORM 更新 map（内部使用）
func (u UserUpdates) ToMap() map[string]interface{} {
	updates := make(map[string]interface{})
	if u.Name != nil {
		updates["name"] = *u.Name
	}
	if u.Avatar != nil {
		updates["avatar"] = *u.Avatar
	}
	if u.BloodGroup != nil {
		updates["blood_group"] = *u.BloodGroup
	}
	if u.District != nil {
		updates["district"] = *u.District
	}
	if u.Upazila != nil {
		updates["upazila"] = *u.Upazila
	}
	if u.Role != nil {
		updates["role"] = *u.Role
	}
	if u.Status != nil {
		updates["status"] = *u.Status
	}
	return updates
}

// IsEmpty 检查是否没有任何更新字段
func (u UserUpdates) IsEmpty() bool {
	return len(u.ToMap()) == 0
}

// RequestUpdates 捐献请求更新字段
type RequestUpdates struct {
	RequesterName *string
	RecipientName *string
	BloodGroup    *string
	District      *string
	Upazila       *string
	Hospital      *string
	Address       *string
	DonationDate  *string
	DonationTime  *string
	Message       *string
	Status        *DonationStatus
	DonorName     *string
	DonorEmail    *string
}

// ToMap 转换为 GORM 更新 map（内部使用）
func (u RequestUpdates) ToMap() map[string]interface{} {
	updates := make(map[string]interface{})
	set := func(column string, value *string) {
		if value != nil {
			updates[column] = *value
		}
	}
	set("requester_name", u.RequesterName)
	set("recipient_name", u.RecipientName)
	set("blood_group", u.BloodGroup)
	set("district", u.District)
	set("upazila", u.Upazila)
	set("hospital", u.Hospital)
	set("address", u.Address)
	set("donation_date", u.DonationDate)
	set("donation_time", u.DonationTime)
	set("message", u.Message)
	set("donor_name", u.DonorName)
	set("donor_email", u.DonorEmail)
	if u.Status != nil {
		updates["donation_status"] = *u.Status
	}
	return updates
}

// IsEmpty 检查是否没有任何更新字段
func (u RequestUpdates) IsEmpty() bool {
	return len(u.ToMap()) == 0
}

// BlogUpdates 博客更新字段
type BlogUpdates struct {
	Status *BlogStatus
}

// ToMap 转换为 GORM 更新 map（内部使用）
func (u BlogUpdates) ToMap() map[string]interface{} {
	updates := make(map[string]interface{})
	if u.Status != nil {
		updates["status"] = *u.Status
	}
	return updates
}

// IsEmpty 检查是否没有任何更新字段
func (u BlogUpdates) IsEmpty() bool {
	return len(u.ToMap()) == 0
}
